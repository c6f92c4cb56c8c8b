// telin reconciles phone numbers against a country selection the way the
// international telephone input control does.
package main

import (
	"github.com/hightemp/telin/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
