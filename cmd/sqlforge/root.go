package main

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlforge",
		Short:        "sqlforge",
		SilenceUsage: true,
		Long:         `Dialect-aware SQL formatter, tokenizer, and AST inspector.`,
	}

	presetFlag string
	configFlag string
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&presetFlag, "preset", "", "dialect preset name, e.g. postgres, mysql, sqlserver")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a sqlforge.yaml style-override file")
	return rootCmd.Execute()
}

func init() {
}
