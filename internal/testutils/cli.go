// Package testutils holds helpers shared by command tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// BuildCLIForTests returns a root "depsync" command wrapping cmds. Exit
// codes are returned as errors instead of terminating the test binary.
func BuildCLIForTests(cmds []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:           "depsync",
		Commands:       cmds,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// RunCLITest runs app with args from inside workdir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workdir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workdir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args from inside workdir and returns
// whatever error the run produced.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workdir string) error {
	t.Helper()
	if workdir != "" {
		t.Chdir(workdir)
	}
	return app.Run(context.Background(), args)
}

// CaptureStdout runs fn and returns everything it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	orig := os.Stdout
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(&buf, r)
		done <- err
	}()

	defer func() {
		os.Stdout = orig
	}()

	fn()

	_ = w.Close()
	os.Stdout = orig
	if err := <-done; err != nil {
		return "", err
	}
	_ = r.Close()

	return buf.String(), nil
}
