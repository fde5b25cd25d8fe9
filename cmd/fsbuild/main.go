package main

import (
	"os"

	"github.com/arjun-christopher/fsbuild/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
