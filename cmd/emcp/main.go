// Where: cmd/emcp/main.go
// What: CLI entrypoint.
// Why: Execute emcp commands with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/elastic-mcp/emcp/internal/app"
)

func main() {
	deps, closer, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	os.Exit(app.Run(os.Args[1:], deps))
}
