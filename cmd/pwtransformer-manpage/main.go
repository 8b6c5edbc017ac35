package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pwtransformer/cmd/pwtransformer"
	"github.com/arthur-debert/pwtransformer/internal/version"
)

func main() {
	rootCmd := pwtransformer.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PWTRANSFORMER",
		Section: "1",
		Source:  "pwtransformer " + version.Version,
		Manual:  "pwtransformer manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
