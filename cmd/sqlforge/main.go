package main

import (
	"os"

	"github.com/sqlforge/sqlforge/internal/xlog"
)

func main() {
	if err := Execute(); err != nil {
		xlog.New().WithError(err).Error("sqlforge failed")
		os.Exit(1)
	}
}
