// Package invoke shells out to the external binaries used for the
// diagnostic and administrative operations not covered by the typed
// API: kubectl and helm.
package invoke

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// Runner executes an external binary with an argument list and returns
// its combined output. A non-zero exit status is returned as an error
// carrying the output.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

type execRunner struct {
	argv []string
}

// NewRunner builds a Runner from a command string. The string may carry
// its own arguments ("kubectl --context staging") and is split with
// shell-style quoting rules.
func NewRunner(command string) (Runner, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return execRunner{argv: argv}, nil
}

func (r execRunner) Run(ctx context.Context, args ...string) (string, error) {
	argv := append(append([]string{}, r.argv...), args...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s", string(output))
	}
	return strings.TrimSuffix(string(output), "\n"), nil
}
