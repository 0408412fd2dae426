package main

import (
	"os"

	"github.com/cashbuddy-dev/cashbuddy/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
