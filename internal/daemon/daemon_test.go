package daemon

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestWritePidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := WritePidFile("uciserver"); err != nil {
		t.Fatalf("WritePidFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".uciwire", "uciserver.pid"))
	if err != nil {
		t.Fatalf("read pid file: %v", err)
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("pid file contents %q are not a pid", data)
	}
	if pid != os.Getpid() {
		t.Errorf("pid file contains %d, want %d", pid, os.Getpid())
	}
}
