// Package main provides the CLI entry point for docsplit, a tool that splits
// annotated source files into documentation and code sections.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newApp(os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
