// Package main is the entry point for vidman.
package main

import (
	"github.com/anisan-cli/vidman/cmd"
	"github.com/anisan-cli/vidman/config"
	"github.com/anisan-cli/vidman/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
