// Bulk loading of instance and scenario files straight out of the dataset
// zip archive. Files are recognized by the dataset naming convention
// (ins_N{N}_K{K}_Freq{F}_sCap{C}.txt, wScenarios_..._nu{nu}.txt); archive
// members that do not match are skipped. Recombining the split archive
// parts (*.zip.001, ...) into one zip stays an external pre-processing
// step with ordinary archive tools.

package ssnd

import (
	"archive/zip"
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"
)

// InstanceKey identifies one instance size class.
type InstanceKey struct {
	Nodes           int // N: number of physical terminals
	Requests        int // K: number of demand requests
	Frequency       int // Freq: services per physical arc
	ServiceCapacity int // sCap: uniform service capacity
}

func (k InstanceKey) String() string {
	return fmt.Sprintf("N%d_K%d_Freq%d_sCap%d", k.Nodes, k.Requests, k.Frequency, k.ServiceCapacity)
}

// ScenarioKey identifies one scenario set: a size class plus the demand
// variability level nu.
type ScenarioKey struct {
	InstanceKey
	Nu float64
}

func (k ScenarioKey) String() string {
	return fmt.Sprintf("%s_nu%g", k.InstanceKey, k.Nu)
}

var (
	instanceFileRe = regexp.MustCompile(`^ins_N(\d+)_K(\d+)_Freq(\d+)_sCap(\d+)\.txt$`)
	scenarioFileRe = regexp.MustCompile(`^wScenarios_N(\d+)_K(\d+)_Freq(\d+)_sCap(\d+)_nu([\d.]+)\.txt$`)
)

// MatchInstanceFilename reports whether name follows the instance file
// naming convention and returns the encoded key.
func MatchInstanceFilename(name string) (InstanceKey, bool) {
	m := instanceFileRe.FindStringSubmatch(name)
	if m == nil {
		return InstanceKey{}, false
	}
	return InstanceKey{
		Nodes:           mustAtoi(m[1]),
		Requests:        mustAtoi(m[2]),
		Frequency:       mustAtoi(m[3]),
		ServiceCapacity: mustAtoi(m[4]),
	}, true
}

// MatchScenarioFilename reports whether name follows the wScenarios file
// naming convention and returns the encoded key.
func MatchScenarioFilename(name string) (ScenarioKey, bool) {
	m := scenarioFileRe.FindStringSubmatch(name)
	if m == nil {
		return ScenarioKey{}, false
	}
	nu, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		return ScenarioKey{}, false
	}
	return ScenarioKey{
		InstanceKey: InstanceKey{
			Nodes:           mustAtoi(m[1]),
			Requests:        mustAtoi(m[2]),
			Frequency:       mustAtoi(m[3]),
			ServiceCapacity: mustAtoi(m[4]),
		},
		Nu: nu,
	}, true
}

// mustAtoi converts digits already matched by \d+.
func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("regexp-matched digits failed to parse: %q", s))
	}
	return n
}

// LoadInstancesZip parses every instance file in the archive, keyed by
// size class. A parse failure in any member aborts the load.
func LoadInstancesZip(zipPath string) (map[InstanceKey]*Instance, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer func() { _ = zr.Close() }()

	out := make(map[InstanceKey]*Instance)
	for _, member := range zr.File {
		base := path.Base(member.Name)
		key, ok := MatchInstanceFilename(base)
		if !ok {
			logrus.Debugf("skipping archive member %s: not an instance file", member.Name)
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive member %s: %w", member.Name, err)
		}
		inst, err := ParseInstance(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing archive member %s: %w", member.Name, err)
		}
		if inst.Name == "" {
			inst.Name = fmt.Sprintf("ins_%s", key)
		}
		out[key] = inst
	}
	return out, nil
}

// LoadScenarioSetsZip parses every wScenarios file in the archive, keyed
// by size class and nu.
func LoadScenarioSetsZip(zipPath string) (map[ScenarioKey]*ScenarioSet, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer func() { _ = zr.Close() }()

	out := make(map[ScenarioKey]*ScenarioSet)
	for _, member := range zr.File {
		base := path.Base(member.Name)
		key, ok := MatchScenarioFilename(base)
		if !ok {
			logrus.Debugf("skipping archive member %s: not a scenario file", member.Name)
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive member %s: %w", member.Name, err)
		}
		set, err := ParseScenarioSet(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing archive member %s: %w", member.Name, err)
		}
		set.Nodes = key.Nodes
		set.MaxRequests = key.Requests
		set.Frequency = key.Frequency
		set.ServiceCapacity = key.ServiceCapacity
		set.Nu = key.Nu
		out[key] = set
	}
	return out, nil
}
