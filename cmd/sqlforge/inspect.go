package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/sqlforge/sqlforge/parser"
)

var (
	inspectCmd = &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a SQL file and repr-dump its AST",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return fmt.Errorf("expected exactly one file argument")
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			root, err := parser.Parse(string(src))
			if err != nil {
				return err
			}

			repr.Println(root)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}
