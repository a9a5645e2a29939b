package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssnd-bench/ssndkit/ssnd"
)

var validateZipPath string

var validateCmd = &cobra.Command{
	Use:   "validate [<file> ...]",
	Short: "Validate instance and scenario files (or a whole dataset zip)",
	Long: "Parse the given files (wScenarios files are recognized by name, everything " +
		"else is treated as an instance file) and run every structural invariant check. " +
		"With --zip, validate every recognized member of a dataset archive instead.",
	Run: func(cmd *cobra.Command, args []string) {
		if validateZipPath == "" && len(args) == 0 {
			logrus.Fatal("Nothing to validate: pass files or --zip")
		}

		checked := 0
		if validateZipPath != "" {
			instances, err := ssnd.LoadInstancesZip(validateZipPath)
			if err != nil {
				logrus.Fatalf("Validation failed: %v", err)
			}
			sets, err := ssnd.LoadScenarioSetsZip(validateZipPath)
			if err != nil {
				logrus.Fatalf("Validation failed: %v", err)
			}
			for key, inst := range instances {
				if err := inst.Validate(); err != nil {
					logrus.Fatalf("Validation failed for %s: %v", key, err)
				}
			}
			for key, set := range sets {
				if err := set.Validate(); err != nil {
					logrus.Fatalf("Validation failed for %s: %v", key, err)
				}
			}
			checked += len(instances) + len(sets)
		}

		for _, path := range args {
			if err := validateFile(path); err != nil {
				logrus.Fatalf("Validation failed: %v", err)
			}
			checked++
		}
		logrus.Infof("Validated %d file(s): all invariants hold", checked)
	},
}

func validateFile(path string) error {
	base := path[strings.LastIndexByte(path, '/')+1:]
	if strings.HasPrefix(base, "wScenarios_") {
		set, err := ssnd.LoadScenarioSet(path)
		if err != nil {
			return err
		}
		return set.Validate()
	}
	inst, err := ssnd.LoadInstance(path)
	if err != nil {
		return err
	}
	return inst.Validate()
}

func init() {
	validateCmd.Flags().StringVar(&validateZipPath, "zip", "", "Path to a recombined dataset zip archive")
}
