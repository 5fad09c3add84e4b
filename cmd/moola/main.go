package main

import (
	"os"

	"moola/cmd/moola/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
