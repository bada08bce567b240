package main

import (
	"os"

	"snartnet/cmd/snartnet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
