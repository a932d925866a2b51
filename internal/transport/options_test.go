package transport

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	options := DefaultOptions()

	if options.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", options.Timeout)
	}
	if options.Address != "" {
		t.Errorf("Expected empty default address, got %q", options.Address)
	}
}

func TestApplyOptions(t *testing.T) {
	options := ApplyOptions(
		WithAddress("127.0.0.1:6242"),
		WithTimeout(5*time.Second),
	)

	if options.Address != "127.0.0.1:6242" {
		t.Errorf("Address = %q", options.Address)
	}
	if options.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", options.Timeout)
	}
}
