// ./main.go
package main

import (
	"github.com/Amrlmlna/dyad-scan/cmd"
)

// main is the entry point for the dyad-scan CLI.
func main() {
	// All command-line parsing, configuration and execution lives in cmd.
	cmd.Execute()
}
