package main

import (
	"os"

	"github.com/thruflo/claude-loop/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
