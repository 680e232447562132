package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ============================================================================
// TABULA CLI — Load a file, inspect its schema, filter, chart
// ============================================================================

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
