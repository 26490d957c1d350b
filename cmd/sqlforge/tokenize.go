package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlforge/sqlforge/lexer"
)

var (
	tokenizeCmd = &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the lexeme stream for a SQL file, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return fmt.Errorf("expected exactly one file argument")
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			lexemes, err := lexer.New(string(src)).Tokenize()
			if err != nil {
				return err
			}

			for _, lx := range lexemes {
				fmt.Printf("%d:%d %s %q\n", lx.Pos.Line, lx.Pos.Column, lx.Kind, lx.Text)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
