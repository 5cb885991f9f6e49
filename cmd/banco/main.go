package main

import (
	"os"

	"github.com/banco-dev/banco/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
