package main

import (
	"os"

	"github.com/rsehgal/adaptest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
