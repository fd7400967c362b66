package main

import (
	"fmt"
	"os"

	"github.com/autospa/autospa-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "autospactl:", err)
		os.Exit(1)
	}
}
