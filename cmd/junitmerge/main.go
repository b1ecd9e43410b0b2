// Package main is the entry point for the junitmerge CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/junitmerge/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
