package ogr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
)

// Command is one invocation of an external binary.
type Command struct {
	Name string
	Args []string
}

// String renders the command as a line that can be pasted into a shell.
// Passwords in PostgreSQL datasources are masked.
func (c Command) String() string {
	words := []string{c.Name}
	for _, arg := range c.Args {
		if strings.HasPrefix(arg, pgPrefix) {
			arg = pgPrefix + pgconfig.MaskPassword(arg[len(pgPrefix):])
		}
		words = append(words, arg)
	}
	return shellquote.Join(words...)
}

// Runner spawns a command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout io.Writer, stderr io.Writer) error
}

// ExitError reports a non-zero exit status from the external tool.  Whatever
// the tool wrote to stderr has already been relayed.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

type ExecRunner struct{}

var _ Runner = (*ExecRunner)(nil)

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command, stdout io.Writer, stderr io.Writer) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			// killed by a signal
			code = 1
		}
		return &ExitError{Name: cmd.Name, Code: code}
	}
	return fmt.Errorf("failed to run %s: %w", cmd.Name, err)
}
