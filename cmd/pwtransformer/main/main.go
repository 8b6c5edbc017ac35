package main

import (
	"os"

	"github.com/arthur-debert/pwtransformer/cmd/pwtransformer"
)

func main() {
	rootCmd := pwtransformer.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pwtransformer.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
