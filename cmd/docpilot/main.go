package main

import (
	"os"

	"github.com/docpilot/docpilot/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
