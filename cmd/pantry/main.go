// Package main implements the pantry CLI.
// With no arguments it prints the answer for apple(5); subcommands expose
// tracing, ranges, configuration and health checks.
package main

import (
	"fmt"
	"os"

	"github.com/l3aro/pantry/cmd/pantry/commands"
)

var version = "dev"

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
