package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestValidateFile_Instance(t *testing.T) {
	path := writeFixture(t, "ins_N2_K1_Freq1_sCap5.txt", []string{
		"NodeSize 2",
		"TimePeriods [0, 5, 10]",
		"RequestSize 1",
		"ServiceNoPerArc 1",
		"ServiceCapacity 5",
		"FastServiceRatio 0.5",
		"RevenueRange ((10, 20), (5, 15))",
		"ReqDemandRange (1, 10)",
		"ServiceCost 100",
		"Trans/HoldingCost (2, 1)",
		"Arcs [(0, 1)]",
		"",
		"serviceID\tServices\torigin\talpha\tdestination\tbeta\tTranCost\tfs",
		"0\t((0, 0), (1, 10))\t0\t0\t1\t10\t2\t100",
		"",
		"reqs\torigins\tdestinations\talphas\tbetas\tcontract_based\trhos\tws",
		"0\t0\t1\t0\t10\tFalse\t12.5\t3",
	})
	require.NoError(t, validateFile(path))
}

func TestValidateFile_ScenarioSetByName(t *testing.T) {
	path := writeFixture(t, "wScenarios_N2_K1_Freq1_sCap5_nu0.5.txt", []string{
		"reqs\tws\trnd_ws",
		"0\t3\t3;4;2",
	})
	require.NoError(t, validateFile(path))
}

func TestValidateFile_Malformed(t *testing.T) {
	path := writeFixture(t, "ins_N2_K1_Freq1_sCap5.txt", []string{
		"NodeSize two",
		"Arcs []",
	})
	require.Error(t, validateFile(path))
}
