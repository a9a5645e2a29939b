package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssnd-bench/ssndkit/ssnd"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert instance files to JSON or CSV",
	Long:  "Convert benchmark instance files to machine-friendly formats. Output is written to stdout for piping.",
}

// --- ssndkit convert json ---

var convertJSONCmd = &cobra.Command{
	Use:   "json <instance-file>",
	Short: "Convert an instance file to an indented JSON document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inst, err := ssnd.LoadInstance(args[0])
		if err != nil {
			logrus.Fatalf("JSON conversion failed: %v", err)
		}
		if err := ssnd.ExportJSON(os.Stdout, inst); err != nil {
			logrus.Fatalf("JSON conversion failed: %v", err)
		}
	},
}

// --- ssndkit convert legs-csv ---

var convertLegsCmd = &cobra.Command{
	Use:   "legs-csv <instance-file>",
	Short: "Export the service legs of an instance as a CSV table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inst, err := ssnd.LoadInstance(args[0])
		if err != nil {
			logrus.Fatalf("CSV export failed: %v", err)
		}
		if err := ssnd.ExportLegsCSV(os.Stdout, inst); err != nil {
			logrus.Fatalf("CSV export failed: %v", err)
		}
	},
}

func init() {
	convertCmd.AddCommand(convertJSONCmd)
	convertCmd.AddCommand(convertLegsCmd)
}
