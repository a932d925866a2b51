package engine

import (
	"io"
	"os/exec"

	"github.com/uciwire/uciwire/internal/relay"
	"github.com/uciwire/uciwire/pkg/errors"
)

// Engine supervises one spawned chess-engine process. Its stdin and stdout
// become the local endpoint of a relay session; stderr is discarded, not
// relayed. One engine serves exactly one session and is always reaped when
// the session ends.
type Engine struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func Spawn(path string) (*Engine, error) {
	cmd := exec.Command(path)
	cmd.SysProcAttr = sysProcAttr()
	// cmd.Stderr stays nil: the child's stderr goes to the null device.

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.WrapWithBase(errors.ErrSpawnFailed, path, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.WrapWithBase(errors.ErrSpawnFailed, path, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.WrapWithBase(errors.ErrSpawnFailed, path, err)
	}

	return &Engine{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
	}, nil
}

func (e *Engine) PID() int {
	return e.cmd.Process.Pid
}

// Endpoint exposes the engine's stdio as the local side of a relay session.
func (e *Engine) Endpoint() relay.Endpoint {
	return relay.NewStreamEndpoint(e.stdout, e.stdin)
}

// Stop forcibly terminates the engine and waits for it to be reaped. All
// errors are ignored: the process may already have exited on its own.
func (e *Engine) Stop() {
	_ = e.stdin.Close()
	_ = e.cmd.Process.Kill()
	_ = e.cmd.Wait()
}

// Running reports whether the engine has been reaped yet.
func (e *Engine) Running() bool {
	return e.cmd.ProcessState == nil
}
