package ssnd

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestMatchInstanceFilename(t *testing.T) {
	key, ok := MatchInstanceFilename("ins_N6_K30_Freq3_sCap20.txt")
	require.True(t, ok)
	assert.Equal(t, InstanceKey{Nodes: 6, Requests: 30, Frequency: 3, ServiceCapacity: 20}, key)
	assert.Equal(t, "N6_K30_Freq3_sCap20", key.String())

	for _, name := range []string{
		"ins_N6_K30_Freq3.txt",
		"wScenarios_N6_K30_Freq3_sCap20_nu0.5.txt",
		"readme.md",
		"ins_N6_K30_Freq3_sCap20.json",
	} {
		if _, ok := MatchInstanceFilename(name); ok {
			t.Errorf("MatchInstanceFilename(%q) matched, want no match", name)
		}
	}
}

func TestMatchScenarioFilename(t *testing.T) {
	key, ok := MatchScenarioFilename("wScenarios_N7_K40_Freq2_sCap15_nu0.25.txt")
	require.True(t, ok)
	assert.Equal(t, 7, key.Nodes)
	assert.Equal(t, 40, key.Requests)
	assert.Equal(t, 2, key.Frequency)
	assert.Equal(t, 15, key.ServiceCapacity)
	assert.Equal(t, 0.25, key.Nu)

	_, ok = MatchScenarioFilename("ins_N7_K40_Freq2_sCap15.txt")
	assert.False(t, ok)
}

func TestLoadInstancesZip(t *testing.T) {
	path := writeTestZip(t, map[string]string{
		"instances/ins_N2_K1_Freq1_sCap5.txt": minimalInstanceText(),
		"instances/notes.txt":                 "not an instance\n",
	})

	instances, err := LoadInstancesZip(path)
	require.NoError(t, err)
	require.Len(t, instances, 1)

	key := InstanceKey{Nodes: 2, Requests: 1, Frequency: 1, ServiceCapacity: 5}
	inst, ok := instances[key]
	require.True(t, ok)
	assert.Equal(t, "ins_N2_K1_Freq1_sCap5", inst.Name)
	assert.Len(t, inst.Services, 1)
}

func TestLoadInstancesZip_MalformedMemberAborts(t *testing.T) {
	lines := minimalInstanceLines()
	lines[1] = "NodeSize two"
	path := writeTestZip(t, map[string]string{
		"ins_N2_K1_Freq1_sCap5.txt": joinLines(lines),
	})

	_, err := LoadInstancesZip(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ins_N2_K1_Freq1_sCap5.txt")
}

func TestLoadScenarioSetsZip(t *testing.T) {
	path := writeTestZip(t, map[string]string{
		"scenarios/wScenarios_N2_K1_Freq1_sCap5_nu0.5.txt": scenarioText(),
		"scenarios/wScenarios_N2_K1_Freq1_sCap5_nu1.txt":   scenarioText(),
		"scenarios/readme.txt":                             "ignore me\n",
	})

	sets, err := LoadScenarioSetsZip(path)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	key := ScenarioKey{
		InstanceKey: InstanceKey{Nodes: 2, Requests: 1, Frequency: 1, ServiceCapacity: 5},
		Nu:          0.5,
	}
	set, ok := sets[key]
	require.True(t, ok)
	assert.Equal(t, 0.5, set.Nu)
	assert.Equal(t, 2, set.Nodes)
	assert.Equal(t, 3, set.DrawCount())
}

func TestLoadInstancesZip_MissingArchive(t *testing.T) {
	_, err := LoadInstancesZip(filepath.Join(t.TempDir(), "nope.zip"))
	require.Error(t, err)
}

func joinLines(lines []string) string {
	out := ""
	for _, ln := range lines {
		out += ln + "\n"
	}
	return out
}
