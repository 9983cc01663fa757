// Command docsearch serves documentation search and web scraping tools over
// the Model Context Protocol, and runs the same operations from the shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
