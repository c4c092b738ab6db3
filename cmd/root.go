package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studyref",
	Short: "study cross-reference tool",
	Example: `studyref serve
studyref study create -t <title> -b <book> -n <chapter>
studyref study list
studyref link add -s <study-id> -d <target-study-id>
studyref link add-external -s <study-id> -u <url>
studyref link list -s <study-id>
studyref link remove -r <reference-id>
studyref link reorder -r <reference-id> --direction up`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
