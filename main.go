package main

import (
	"os"

	"github.com/kotoba-ai/kotoba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
