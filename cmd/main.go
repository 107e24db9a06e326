package main

import (
	"os"

	"github.com/SSHRIHARI006/GyanForge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
