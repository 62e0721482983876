package main

import (
	"os"

	"github.com/minuteclass/minuteclass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
