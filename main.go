package main

import (
	"os"

	"github.com/chloebrgr/docksched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
