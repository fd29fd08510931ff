// The main package for the regionharvest executable.
package main

import (
	"github.com/velohist/regionharvest/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
