// Command cachewalk benchmarks row-major against column-major traversal of
// a dense integer matrix.
package main

import (
	"os"

	"github.com/roach88/cachewalk/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
