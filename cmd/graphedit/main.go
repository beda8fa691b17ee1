package main

import (
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "graphedit: %s\n", err)
		os.Exit(1)
	}
}
