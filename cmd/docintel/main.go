package main

import (
	"os"

	"docintel/cmd/docintel/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
