// Where: internal/docker/build.go
// What: Image build via the engine CLI.
// Why: Drive `docker build` with the token injected and never logged.
package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/elastic-mcp/emcp/internal/constants"
)

// BuildOptions describes a single image build.
type BuildOptions struct {
	Image       string
	Dockerfile  string
	ContextPath string
	Token       string // injected as --build-arg GCP_TOKEN=...
	BuildArgs   [][2]string
	NoCache     bool
	Pull        bool
	DryRun      bool
}

// BuildImage assembles and runs the `docker build` invocation. The printed
// plan redacts the token build argument; everything else is shown verbatim.
func BuildImage(ctx context.Context, runner CommandRunner, out io.Writer, opts BuildOptions) error {
	if runner == nil {
		return errors.New("command runner is nil")
	}
	ref := strings.TrimSpace(opts.Image)
	if ref == "" {
		return errors.New("image ref is required")
	}
	// Docker refs must be lowercase and whitespace-free.
	if strings.ToLower(ref) != ref || strings.ContainsAny(ref, " \t\n") {
		return fmt.Errorf("invalid image ref %q (must be lowercase, no spaces)", ref)
	}

	dockerfile := strings.TrimSpace(opts.Dockerfile)
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}
	contextPath := strings.TrimSpace(opts.ContextPath)
	if contextPath == "" {
		contextPath = "."
	}

	if !opts.DryRun {
		if st, err := os.Stat(dockerfile); err != nil || st.IsDir() {
			return fmt.Errorf("dockerfile %q not found or not a file", dockerfile)
		}
		if st, err := os.Stat(contextPath); err != nil || !st.IsDir() {
			return fmt.Errorf("build context %q not found or not a directory", contextPath)
		}
	}

	args := []string{"build", "--progress=plain", "-t", ref, "-f", dockerfile}
	if opts.Pull {
		args = append(args, "--pull")
	}
	if opts.NoCache {
		args = append(args, "--no-cache")
	}
	if opts.Token != "" {
		args = append(args, "--build-arg", constants.BuildArgToken+"="+opts.Token)
	}
	for _, kv := range opts.BuildArgs {
		if kv[0] != "" {
			args = append(args, "--build-arg", kv[0]+"="+kv[1])
		}
	}
	args = append(args, contextPath)

	fmt.Fprintln(out, "— Build Plan —")
	fmt.Fprintf(out, "  image     : %s\n", ref)
	fmt.Fprintf(out, "  dockerfile: %s\n", absOr(dockerfile))
	fmt.Fprintf(out, "  context   : %s\n", absOr(contextPath))
	fmt.Fprintln(out, "  executing :", "docker", strings.Join(redactTokenArgs(args), " "))

	if opts.DryRun {
		fmt.Fprintln(out, "[dry run] build skipped")
		return nil
	}
	if err := runner.Run(ctx, "", "docker", args...); err != nil {
		return fmt.Errorf("docker build failed: %w", err)
	}
	return nil
}

// redactTokenArgs masks the GCP_TOKEN build argument for display.
func redactTokenArgs(args []string) []string {
	redacted := make([]string, len(args))
	copy(redacted, args)
	prefix := constants.BuildArgToken + "="
	for i, arg := range redacted {
		if strings.HasPrefix(arg, prefix) {
			redacted[i] = prefix + "********"
		}
	}
	return redacted
}

func absOr(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
