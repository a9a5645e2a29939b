package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssnd-bench/ssndkit/ssnd"
	"github.com/ssnd-bench/ssndkit/ssnd/report"
)

var summarizeOutPath string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <dataset-zip>",
	Short: "Write a YAML report over every instance and scenario set in a dataset zip",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		zipPath := args[0]
		instances, err := ssnd.LoadInstancesZip(zipPath)
		if err != nil {
			logrus.Fatalf("Summarize failed: %v", err)
		}
		sets, err := ssnd.LoadScenarioSetsZip(zipPath)
		if err != nil {
			logrus.Fatalf("Summarize failed: %v", err)
		}
		logrus.Infof("Loaded %d instance(s) and %d scenario set(s) from %s",
			len(instances), len(sets), zipPath)

		r := report.Build(instances, sets)
		r.Archive = zipPath

		out := os.Stdout
		if summarizeOutPath != "" {
			f, err := os.Create(summarizeOutPath)
			if err != nil {
				logrus.Fatalf("Summarize failed: %v", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := r.WriteYAML(out); err != nil {
			logrus.Fatalf("Summarize failed: %v", err)
		}
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeOutPath, "out", "", "Write the report to a file instead of stdout")
}
