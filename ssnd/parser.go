// Forward-pass parser for SSND instance files. One pass, line by line,
// dispatching on an explicit Section state: header key/value lines, the
// physical arc list, then the tab-separated SERVICES / REQS tables and the
// optional HOLDING / PSI / EIN / EOUT tables, each terminated by a blank
// line. No backtracking and no lookahead beyond the current line.

package ssnd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const arcsLinePrefix = "Arcs "

// LoadInstance opens and parses one instance file. When the file carries
// no Name header the base filename substitutes for it.
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening instance %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	inst, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("parsing instance %s: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return inst, nil
}

// ParseInstance reads one instance from r. The returned Instance is fully
// validated; on any failure the error is a *MalformedError or
// *TruncatedError locating the offending line and nothing is returned.
func ParseInstance(r io.Reader) (*Instance, error) {
	p := &instanceParser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return p.run()
}

// headerValue is one header entry plus the line it came from, so type
// errors detected later still point at the right line.
type headerValue struct {
	value string
	line  int
}

type instanceParser struct {
	scanner *bufio.Scanner
	line    int
	inst    *Instance
}

// next returns the following line with trailing carriage returns removed.
func (p *instanceParser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.line++
	return strings.TrimRight(p.scanner.Text(), "\r"), true
}

// eofErr distinguishes a genuine read failure from plain truncation.
func (p *instanceParser) eofErr(sec Section) error {
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("reading instance input: %w", err)
	}
	return &TruncatedError{Section: sec, Line: p.line}
}

func (p *instanceParser) run() (*Instance, error) {
	p.inst = &Instance{
		ExecIn:  make(map[TimedNode][]ServiceArc),
		ExecOut: make(map[TimedNode][]ServiceArc),
	}

	arcsLine, err := p.readHeader()
	if err != nil {
		return nil, err
	}
	if err := p.readArcs(arcsLine); err != nil {
		return nil, err
	}
	if err := p.readTables(); err != nil {
		return nil, err
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instance input: %w", err)
	}
	return p.inst, nil
}

// readHeader consumes key/value lines up to (and returning) the Arcs line.
func (p *instanceParser) readHeader() (string, error) {
	header := make(map[string]headerValue)
	for {
		ln, ok := p.next()
		if !ok {
			return "", p.eofErr(SectionHeader)
		}
		if ln == "" {
			continue
		}
		if strings.HasPrefix(ln, arcsLinePrefix) {
			if err := p.applyHeader(header); err != nil {
				return "", err
			}
			return ln, nil
		}
		key, value, found := strings.Cut(ln, " ")
		if !found {
			return "", malformed(SectionHeader, p.line, ln, "expected 'key value'")
		}
		header[key] = headerValue{value: strings.TrimSpace(value), line: p.line}
	}
}

// applyHeader converts the collected key/value pairs to typed instance
// parameters, rejecting missing keys and non-numeric values.
func (p *instanceParser) applyHeader(header map[string]headerValue) error {
	intField := func(key string, dst *int) error {
		hv, ok := header[key]
		if !ok {
			return malformed(SectionHeader, p.line, "", "header is missing key %s", key)
		}
		n, err := strconv.Atoi(hv.value)
		if err != nil {
			return malformed(SectionHeader, hv.line, hv.value, "header %s is not an integer", key)
		}
		*dst = n
		return nil
	}

	for _, field := range []struct {
		key string
		dst *int
	}{
		{"NodeSize", &p.inst.NodeSize},
		{"RequestSize", &p.inst.RequestSize},
		{"ServiceNoPerArc", &p.inst.ServiceNoPerArc},
		{"ServiceCapacity", &p.inst.ServiceCapacity},
		{"ServiceCost", &p.inst.ServiceCost},
	} {
		if err := intField(field.key, field.dst); err != nil {
			return err
		}
	}

	hv, ok := header["FastServiceRatio"]
	if !ok {
		return malformed(SectionHeader, p.line, "", "header is missing key FastServiceRatio")
	}
	ratio, err := strconv.ParseFloat(hv.value, 64)
	if err != nil {
		return malformed(SectionHeader, hv.line, hv.value, "header FastServiceRatio is not a number")
	}
	p.inst.FastServiceRatio = ratio

	hv, ok = header["TimePeriods"]
	if !ok {
		return malformed(SectionHeader, p.line, "", "header is missing key TimePeriods")
	}
	lit, err := parseLiteral(hv.value)
	if err == nil {
		p.inst.TimePeriods, err = lit.asIntList()
	}
	if err != nil {
		return malformed(SectionHeader, hv.line, hv.value, "header TimePeriods: %v", err)
	}

	hv, ok = header["RevenueRange"]
	if !ok {
		return malformed(SectionHeader, p.line, "", "header is missing key RevenueRange")
	}
	lit, err = parseLiteral(hv.value)
	if err == nil {
		p.inst.ContractRevenue, p.inst.SpotRevenue, err = lit.asRangePair()
	}
	if err != nil {
		return malformed(SectionHeader, hv.line, hv.value, "header RevenueRange: %v", err)
	}

	hv, ok = header["ReqDemandRange"]
	if !ok {
		return malformed(SectionHeader, p.line, "", "header is missing key ReqDemandRange")
	}
	lit, err = parseLiteral(hv.value)
	if err == nil {
		p.inst.DemandRange, err = lit.asRange()
	}
	if err != nil {
		return malformed(SectionHeader, hv.line, hv.value, "header ReqDemandRange: %v", err)
	}

	hv, ok = header["Trans/HoldingCost"]
	if !ok {
		return malformed(SectionHeader, p.line, "", "header is missing key Trans/HoldingCost")
	}
	lit, err = parseLiteral(hv.value)
	if err == nil {
		p.inst.TransCost, p.inst.HoldingCost, err = lit.asPair()
	}
	if err != nil {
		return malformed(SectionHeader, hv.line, hv.value, "header Trans/HoldingCost: %v", err)
	}

	if hv, ok := header["Name"]; ok {
		p.inst.Name = hv.value
	}

	if p.inst.NodeSize <= 0 {
		return malformed(SectionHeader, header["NodeSize"].line, header["NodeSize"].value,
			"NodeSize must be > 0")
	}
	if len(p.inst.TimePeriods) == 0 {
		return malformed(SectionHeader, header["TimePeriods"].line, header["TimePeriods"].value,
			"TimePeriods must not be empty")
	}
	return nil
}

func (p *instanceParser) readArcs(ln string) error {
	lit, err := parseLiteral(strings.TrimSpace(strings.TrimPrefix(ln, arcsLinePrefix)))
	var arcs []Arc
	if err == nil {
		arcs, err = lit.asArcList()
	}
	if err != nil {
		return malformed(SectionArcs, p.line, ln, "physical arc list: %v", err)
	}
	for _, a := range arcs {
		if err := p.inst.checkNodePair(a.From, a.To); err != nil {
			return malformed(SectionArcs, p.line, ln, "physical arc %s: %v", formatArc(a), err)
		}
	}
	p.inst.PhysicalArcs = arcs
	return nil
}

// readTables walks the tab-separated tables in their fixed order. SERVICES
// and REQS must be present; the trailing tables may be missing.
func (p *instanceParser) readTables() error {
	tables := []struct {
		section   Section
		headerRow string
		required  bool
		row       func(int, string) error
	}{
		{SectionServices, servicesHeaderRow, true, p.serviceRow},
		{SectionRequests, requestsHeaderRow, true, p.requestRow},
		{SectionHolding, holdingHeaderRow, false, p.holdingRow},
		{SectionPenalties, penaltiesHeaderRow, false, p.penaltyRow},
		{SectionExecIn, execInHeaderRow, false, p.execInRow},
		{SectionExecOut, execOutHeaderRow, false, p.execOutRow},
	}

	ln, ok := "", false
	for _, tbl := range tables {
		// Find the next table header, skipping blank separator lines.
		for ln == "" {
			ln, ok = p.next()
			if !ok {
				if tbl.required {
					return p.eofErr(tbl.section)
				}
				return nil
			}
		}
		if ln != tbl.headerRow {
			if tbl.required {
				return malformed(tbl.section, p.line, ln, "expected table header %q", tbl.headerRow)
			}
			continue // optional table absent, try the line against the next one
		}
		for {
			ln, ok = p.next()
			if !ok || ln == "" {
				break
			}
			if err := tbl.row(p.line, ln); err != nil {
				return err
			}
		}
	}
	if ln != "" {
		return malformed(SectionDone, p.line, ln, "unexpected content after the last table")
	}
	return nil
}

// splitFields splits one tab-separated row and rejects a wrong field count.
func splitFields(sec Section, line int, ln string, want int) ([]string, error) {
	fields := strings.Split(ln, "\t")
	if len(fields) != want {
		return nil, malformed(sec, line, ln, "expected %d tab-separated fields, got %d", want, len(fields))
	}
	return fields, nil
}

func (p *instanceParser) serviceRow(line int, ln string) error {
	fields, err := splitFields(SectionServices, line, ln, 8)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return malformed(SectionServices, line, ln, "service id %q is not an integer", fields[0])
	}
	lit, err := parseLiteral(fields[1])
	var arc ServiceArc
	if err == nil {
		arc, err = lit.asServiceArc()
	}
	if err != nil {
		return malformed(SectionServices, line, ln, "service arc: %v", err)
	}
	flat := make([]int, 4)
	for i, name := range []string{"origin", "alpha", "destination", "beta"} {
		flat[i], err = strconv.Atoi(fields[2+i])
		if err != nil {
			return malformed(SectionServices, line, ln, "service %s %q is not an integer", name, fields[2+i])
		}
	}
	if arc.From.Node != flat[0] || arc.From.Time != flat[1] || arc.To.Node != flat[2] || arc.To.Time != flat[3] {
		return malformed(SectionServices, line, ln,
			"service arc %s disagrees with flat columns (%d, %d, %d, %d)",
			formatServiceArc(arc), flat[0], flat[1], flat[2], flat[3])
	}
	variable, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return malformed(SectionServices, line, ln, "service variable cost %q is not a number", fields[6])
	}
	fixed, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return malformed(SectionServices, line, ln, "service fixed cost %q is not a number", fields[7])
	}

	leg := ServiceLeg{
		ID:           id,
		Leg:          arc,
		Origin:       arc.From.Node,
		Departure:    arc.From.Time,
		Destination:  arc.To.Node,
		Arrival:      arc.To.Time,
		Capacity:     float64(p.inst.ServiceCapacity),
		VariableCost: variable,
		FixedCost:    fixed,
	}
	if err := p.inst.checkService(&leg); err != nil {
		return malformed(SectionServices, line, ln, "%v", err)
	}
	p.inst.Services = append(p.inst.Services, leg)
	return nil
}

func (p *instanceParser) requestRow(line int, ln string) error {
	fields, err := splitFields(SectionRequests, line, ln, 8)
	if err != nil {
		return err
	}
	ints := make([]int, 5)
	for i, name := range []string{"request id", "origin", "destination", "release", "due"} {
		ints[i], err = strconv.Atoi(fields[i])
		if err != nil {
			return malformed(SectionRequests, line, ln, "%s %q is not an integer", name, fields[i])
		}
	}
	var contract bool
	switch strings.ToLower(strings.TrimSpace(fields[5])) {
	case "true":
		contract = true
	case "false":
		contract = false
	default:
		return malformed(SectionRequests, line, ln, "contract flag %q is not a boolean", fields[5])
	}
	revenue, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return malformed(SectionRequests, line, ln, "unit revenue %q is not a number", fields[6])
	}
	volume, err := strconv.Atoi(fields[7])
	if err != nil {
		return malformed(SectionRequests, line, ln, "baseline demand %q is not an integer", fields[7])
	}

	req := DemandRequest{
		ID:          ints[0],
		Origin:      ints[1],
		Destination: ints[2],
		Release:     ints[3],
		Due:         ints[4],
		Contract:    contract,
		Revenue:     revenue,
		Volume:      volume,
	}
	if err := p.inst.checkRequest(&req); err != nil {
		return malformed(SectionRequests, line, ln, "%v", err)
	}
	p.inst.Requests = append(p.inst.Requests, req)
	return nil
}

func (p *instanceParser) holdingRow(line int, ln string) error {
	fields, err := splitFields(SectionHolding, line, ln, 2)
	if err != nil {
		return err
	}
	lit, err := parseLiteral(fields[0])
	var arc ServiceArc
	if err == nil {
		arc, err = lit.asServiceArc()
	}
	if err != nil {
		return malformed(SectionHolding, line, ln, "holding arc: %v", err)
	}
	cost, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return malformed(SectionHolding, line, ln, "holding cost %q is not a number", fields[1])
	}
	p.inst.HoldingArcs = append(p.inst.HoldingArcs, HoldingArc{Arc: arc, Cost: cost})
	return nil
}

func (p *instanceParser) penaltyRow(line int, ln string) error {
	fields, err := splitFields(SectionPenalties, line, ln, 4)
	if err != nil {
		return err
	}
	req, err := strconv.Atoi(fields[0])
	if err != nil {
		return malformed(SectionPenalties, line, ln, "request id %q is not an integer", fields[0])
	}
	t, err := strconv.Atoi(fields[1])
	if err != nil {
		return malformed(SectionPenalties, line, ln, "time %q is not an integer", fields[1])
	}
	early, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return malformed(SectionPenalties, line, ln, "early penalty %q is not a number", fields[2])
	}
	late, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return malformed(SectionPenalties, line, ln, "late penalty %q is not a number", fields[3])
	}
	p.inst.Penalties = append(p.inst.Penalties, TimePenalty{Request: req, Time: t, Early: early, Late: late})
	return nil
}

func (p *instanceParser) execInRow(line int, ln string) error {
	return p.execRow(SectionExecIn, line, ln, p.inst.ExecIn)
}

func (p *instanceParser) execOutRow(line int, ln string) error {
	return p.execRow(SectionExecOut, line, ln, p.inst.ExecOut)
}

func (p *instanceParser) execRow(sec Section, line int, ln string, dst map[TimedNode][]ServiceArc) error {
	fields, err := splitFields(sec, line, ln, 2)
	if err != nil {
		return err
	}
	lit, err := parseLiteral(fields[0])
	var tn TimedNode
	if err == nil {
		tn, err = lit.asTimedNode()
	}
	if err != nil {
		return malformed(sec, line, ln, "time node: %v", err)
	}
	var arcs []ServiceArc
	if strings.TrimSpace(fields[1]) != "" {
		lit, err = parseLiteral(fields[1])
		if err == nil {
			arcs, err = lit.asServiceArcList()
		}
		if err != nil {
			return malformed(sec, line, ln, "execution arc list: %v", err)
		}
	}
	if _, dup := dst[tn]; dup {
		return malformed(sec, line, ln, "duplicate time node %s", formatTimedNode(tn))
	}
	dst[tn] = arcs
	return nil
}
