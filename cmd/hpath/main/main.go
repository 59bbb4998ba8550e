package main

import (
	"fmt"
	"os"

	"github.com/pranaysashank/hpath/cmd/hpath"
)

func main() {
	rootCmd := hpath.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
