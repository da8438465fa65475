package main

import (
	"os"

	"github.com/dkoval/hirematch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
