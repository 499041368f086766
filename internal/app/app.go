// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/elastic-mcp/emcp/internal/config"
	"github.com/elastic-mcp/emcp/internal/ui"
	"github.com/elastic-mcp/emcp/internal/version"
	"github.com/joho/godotenv"
)

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config  string `short:"c" help:"Path to project config (default: emcp.yaml)"`
	EnvFile string `name:"env-file" help:"Path to .env file"`

	Build   BuildCmd   `cmd:"" help:"Build the service image with a fresh registry token"`
	Up      UpCmd      `cmd:"" help:"Start (or replace) the service container"`
	Down    DownCmd    `cmd:"" help:"Stop and remove the service container"`
	Logs    LogsCmd    `cmd:"" help:"View container logs"`
	Status  StatusCmd  `cmd:"" help:"Show configuration, credentials, and container state"`
	Token   TokenCmd   `cmd:"" help:"Print a freshly minted access token"`
	Init    InitCmd    `cmd:"" help:"Scaffold Dockerfile, emcp.yaml, and .env.example"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	BuildCmd struct {
		NoCache bool `name:"no-cache" help:"Do not use cache when building the image"`
		Pull    bool `help:"Always attempt to pull newer base images"`
		DryRun  bool `name:"dry-run" help:"Print the build plan without executing"`
	}
	UpCmd struct {
		Build  bool `help:"Rebuild the image before starting"`
		Detach bool `short:"d" help:"Do not follow logs after start"`
	}
	DownCmd struct{}
	LogsCmd struct {
		Follow     bool `short:"f" help:"Follow logs"`
		Tail       int  `help:"Tail the latest N lines"`
		Timestamps bool `help:"Show timestamps"`
	}
	StatusCmd struct{}
	TokenCmd  struct{}
	InitCmd   struct {
		Dir      string `arg:"" optional:"" help:"Target directory (default: current)"`
		Image    string `help:"Image ref to write into emcp.yaml"`
		IndexURL string `name:"index-url" help:"Private package index URL"`
		Project  string `help:"GCP project id"`
		Port     int    `help:"Service port" default:"8000"`
	}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	deps.Out = out

	if err := config.EnsureGlobalConfig(); err != nil {
		return exitWithError(out, err)
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("emcp"),
		kong.Description("Build and run the elastic-mcp service container with cloud credentials."))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	loadEnvFile(cli, deps, out)

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

// loadEnvFile loads the environment file if provided, or .env when present
// in the injected working directory.
func loadEnvFile(cli CLI, deps Dependencies, out io.Writer) {
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
		return
	}
	path := filepath.Join(deps.WorkDir, ".env")
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(out, "Warning: failed to load %s: %v\n", path, err)
		}
	}
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"build":      runBuild,
		"up":         runUp,
		"down":       runDown,
		"logs":       runLogs,
		"status":     runStatus,
		"token":      runToken,
		"init":       runInit,
		"init <dir>": runInit,
		"version":    func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}

// resolveProject loads the project configuration honoring the --config flag
// and records the project directory as the last used one.
func resolveProject(cli CLI, deps Dependencies) (config.Project, error) {
	path := cli.Config
	if path == "" {
		path = filepath.Join(deps.WorkDir, config.DefaultFileName)
	}
	cfg, err := config.LoadProject(path)
	if err != nil {
		return cfg, err
	}
	rememberProject(filepath.Dir(path))
	return cfg, nil
}

// rememberProject updates last_project in the global config. Best effort;
// a read-only config dir must not fail the command.
func rememberProject(dir string) {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return
	}
	gc, err := config.LoadGlobalConfig(path)
	if err != nil {
		gc = config.DefaultGlobalConfig()
	}
	if gc.LastProject == dir {
		return
	}
	gc.LastProject = dir
	_ = config.SaveGlobalConfig(path, gc)
}

// globalDefaults loads the global config, falling back to defaults when it
// is missing or unreadable.
func globalDefaults() config.GlobalConfig {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return config.DefaultGlobalConfig()
	}
	gc, err := config.LoadGlobalConfig(path)
	if err != nil {
		return config.DefaultGlobalConfig()
	}
	return gc
}

func exitWithError(out io.Writer, err error) int {
	ui.New(out).Error(err.Error())
	return 1
}
