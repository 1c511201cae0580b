package main

import (
	"os"

	"github.com/dotstrap/dotstrap/cmd/dotstrap/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
