package main

import (
	"os"

	"github.com/roach88/tig/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
