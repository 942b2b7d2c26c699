// cmd/elevbench/main.go
package main

import (
	"github.com/kmorling/elevbench/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the elevbench CLI application by delegating to the
// cobra root command defined in the commands package.
func main() {
	commands.SetVersionInfo(version, commit, date)
	commands.Execute()
}
