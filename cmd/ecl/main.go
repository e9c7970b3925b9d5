// Package main provides the ecl command.
package main

import (
	"os"

	"github.com/leapstack-labs/ecl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
