// Package ssnd loads SSND (stochastic scheduled service network design)
// benchmark instance files into immutable in-memory records.
//
// # Reading Guide
//
// Start with these three files to understand the loader:
//   - instance.go: the Instance record and its invariants
//   - parser.go: the forward-pass section scanner for instance files
//   - scenario.go: demand scenario sets and their probability weights
//
// # File kinds
//
// A dataset archive contains two kinds of plain-text files:
//   - ins_N{N}_K{K}_Freq{F}_sCap{C}.txt: one network instance (header
//     parameters, physical arcs, scheduled services, demand requests, and
//     optional holding/penalty/adjacency tables)
//   - wScenarios_..._nu{nu}.txt: stochastic demand draws pairing with the
//     instance of the same size class
//
// Parsing is a single forward pass with an explicit Section state; the
// first malformed line aborts with an error naming the section, the
// 1-based line number and the raw line. Every parse call is independent
// and side-effect-free, so concurrent parses of distinct files need no
// coordination.
package ssnd
