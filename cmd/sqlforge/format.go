package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlforge/sqlforge/emit"
	"github.com/sqlforge/sqlforge/parser"
	"github.com/sqlforge/sqlforge/printer"
)

var (
	formatOneliner bool

	formatCmd = &cobra.Command{
		Use:   "format <file>",
		Short: "Parse and re-emit a SQL file under the resolved dialect config",
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

			override, err := loadStyleOverride(configFlag)
			if err != nil {
				return err
			}
			cfg := resolveConfig(presetFlag, override)

			tokens, err := emit.Emit(root, cfg)
			if err != nil {
				return err
			}

			mode := printer.Multiline
			if formatOneliner {
				mode = printer.Oneliner
			}
			fmt.Println(printer.Print(tokens, mode))
			return nil
		},
	}
)

func init() {
	formatCmd.Flags().BoolVar(&formatOneliner, "oneliner", false, "collapse output to a single line")
	rootCmd.AddCommand(formatCmd)
}
