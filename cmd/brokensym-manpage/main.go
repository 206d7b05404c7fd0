package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/brokensym/cmd/brokensym"
	"github.com/arthur-debert/brokensym/internal/version"
)

func main() {
	rootCmd := brokensym.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BROKENSYM",
		Section: "1",
		Source:  "brokensym " + version.Version,
		Manual:  "brokensym manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
