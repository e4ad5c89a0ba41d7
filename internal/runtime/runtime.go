package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ashwch/powermenu/internal/config"
)

type ErrorKind int

const (
	SpawnFailed ErrorKind = iota + 1
	NonZeroExit
)

func (k ErrorKind) String() string {
	switch k {
	case SpawnFailed:
		return "spawn failed"
	case NonZeroExit:
		return "non-zero exit"
	default:
		return "unknown"
	}
}

// ExecError reports why a configured command did not succeed.
type ExecError struct {
	Kind    ErrorKind
	Command string
	Status  string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	if e.Kind == SpawnFailed {
		return fmt.Sprintf("could not run command: %v", e.Err)
	}
	msg := fmt.Sprintf("%s, stderr: %s", e.Status, e.Stderr)
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

var envPath = "/usr/bin/env"

// ShellExecutor runs action commands through sh so that the configured line can use
// shell syntax such as $USER. It blocks until the command exits.
type ShellExecutor struct {
	Stdout io.Writer
}

func (s ShellExecutor) Execute(cfg config.ActionConfig) error {
	return RunCommand(cfg.ShellLine(), s.Stdout)
}

// RunCommand makes a single attempt at running line through sh -c.
func RunCommand(line string, stdout io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return &ExecError{Kind: SpawnFailed, Err: errors.New("command cannot be empty")}
	}

	shell, args := shellCommandInvocation(line)
	cmd := exec.Command(shell, args...)
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExecError{
			Kind:    NonZeroExit,
			Command: line,
			Status:  exitErr.ProcessState.String(),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return &ExecError{Kind: SpawnFailed, Command: line, Err: err}
}

func shellCommandInvocation(line string) (string, []string) {
	if _, err := os.Stat(envPath); err == nil {
		return envPath, []string{"sh", "-c", line}
	}
	return "sh", []string{"-c", line}
}
