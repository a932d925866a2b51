package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uciwire/uciwire/internal/i18n"
	"github.com/uciwire/uciwire/internal/util"
	"github.com/uciwire/uciwire/pkg/errors"
)

// WritePidFile records the current pid under ~/.uciwire/<name>.pid.
func WritePidFile(name string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, i18n.T("home_dir_error", nil))
	}

	pidDir := filepath.Join(home, ".uciwire")
	if err := os.MkdirAll(pidDir, 0755); err != nil {
		return errors.Wrap(err, i18n.T("pid_dir_create_error", nil))
	}

	pidPath := filepath.Join(pidDir, name+".pid")
	pid := os.Getpid()

	if err := os.WriteFile(pidPath, fmt.Appendf(nil, "%d", pid), 0644); err != nil {
		return errors.Wrap(err, i18n.T("pid_file_write_error", nil))
	}

	util.Info(i18n.T("pid_file_written", map[string]any{
		"Path": pidPath,
		"PID":  pid,
	}), nil)

	return nil
}
