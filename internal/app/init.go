// Where: internal/app/init.go
// What: Init command handler.
// Why: Scaffold a project directory with the deployment files.
package app

import (
	"io"
	"path/filepath"

	"github.com/elastic-mcp/emcp/internal/config"
	"github.com/elastic-mcp/emcp/internal/scaffold"
	"github.com/elastic-mcp/emcp/internal/ui"
)

func runInit(cli CLI, deps Dependencies, out io.Writer) int {
	dir := cli.Init.Dir
	if dir == "" {
		dir = deps.WorkDir
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(deps.WorkDir, dir)
	}

	defaults := config.DefaultProject()
	data := scaffold.Data{
		Image:      defaults.Image,
		Container:  defaults.Container,
		Port:       cli.Init.Port,
		IndexURL:   cli.Init.IndexURL,
		GCPProject: cli.Init.Project,
	}
	if cli.Init.Image != "" {
		data.Image = cli.Init.Image
	}

	results, err := scaffold.Render(dir, data)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	for _, result := range results {
		if result.Skipped {
			console.Info("kept existing " + result.Path)
		} else {
			console.Success("wrote " + result.Path)
		}
	}
	return 0
}
