package main

import (
	"os"

	"github.com/aegisml/aegis/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
