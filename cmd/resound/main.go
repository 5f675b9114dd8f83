// Package main is the entry point for the Resound model viewer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "resound [model]",
	Short: "An architectural model viewer for room acoustics work",
	Long: `Resound loads STL, OBJ, and glTF building models and opens an
interactive viewer. Clicking a wall, floor, or ceiling selects the whole
coplanar surface and registers it for acoustic analysis.

Running resound with a model file is the same as 'resound view'.`,
	Version: "0.3.0",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
