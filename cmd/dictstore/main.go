/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main provides the entry point for the dictstore CLI.
package main

import (
	"os"

	"github.com/suparena/dictstore/cmd/dictstore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
