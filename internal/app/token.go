// Where: internal/app/token.go
// What: Token command handler.
// Why: Expose the minting step on its own for piping into other tools.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic-mcp/emcp/internal/creds"
)

func runToken(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := resolveProject(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	resolution := creds.Resolve(cfg.CredentialsFile)
	token, err := deps.Minter.Mint(context.Background(), resolution)
	if err != nil {
		return exitWithError(out, err)
	}

	// Bare token on stdout so it composes with shell pipelines.
	fmt.Fprintln(out, token.Value)
	return 0
}
