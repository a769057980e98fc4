package main

import (
	"fmt"
	"os"

	"github.com/TFMV/filebuddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Diagnostics are part of the command's output, not a log line.
		fmt.Println(err)
		os.Exit(1)
	}
}
