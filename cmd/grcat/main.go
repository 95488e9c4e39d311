package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "grcat: %v\n", err)
		os.Exit(1)
	}
}
