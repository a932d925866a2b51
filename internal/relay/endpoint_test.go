package relay

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLineSource(t *testing.T) {
	t.Run("AppendsNewline", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("uci\nisready\n"), io.Discard)

		chunk, err := ep.Source.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(chunk) != "uci\n" {
			t.Errorf("chunk = %q, want %q", chunk, "uci\n")
		}

		chunk, err = ep.Source.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(chunk) != "isready\n" {
			t.Errorf("chunk = %q, want %q", chunk, "isready\n")
		}

		if _, err = ep.Source.Next(); err != io.EOF {
			t.Errorf("expected io.EOF at end of input, got %v", err)
		}
	})

	t.Run("LineWithoutTrailingNewline", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("stop"), io.Discard)

		chunk, err := ep.Source.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(chunk) != "stop\n" {
			t.Errorf("chunk = %q, want %q", chunk, "stop\n")
		}
	})

	t.Run("QuitReturnsErrQuitWithChunk", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("quit\n"), io.Discard)

		chunk, err := ep.Source.Next()
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("expected ErrQuit, got %v", err)
		}
		if string(chunk) != "quit\n" {
			t.Errorf("chunk = %q, want %q", chunk, "quit\n")
		}
	})

	t.Run("QuitIsTrimmed", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("  quit \n"), io.Discard)

		chunk, err := ep.Source.Next()
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("expected ErrQuit, got %v", err)
		}
		// The bytes sent are the line as typed, newline appended.
		if string(chunk) != "  quit \n" {
			t.Errorf("chunk = %q, want %q", chunk, "  quit \n")
		}
	})

	t.Run("LongLineSurvivesIntact", func(t *testing.T) {
		// Longer than bufio's default buffering; must come back as one unit.
		line := "position startpos moves " + strings.Repeat("e2e4 e7e5 ", 8*1024)
		ep := NewTerminalEndpoint(strings.NewReader(line+"\n"), io.Discard)

		chunk, err := ep.Source.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(chunk) != line+"\n" {
			t.Errorf("long line mangled: got %d bytes, want %d", len(chunk), len(line)+1)
		}

		if _, err = ep.Source.Next(); err != io.EOF {
			t.Errorf("expected io.EOF after the long line, got %v", err)
		}
	})

	t.Run("CarriageReturnStripped", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("quit\r\n"), io.Discard)

		chunk, err := ep.Source.Next()
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("expected ErrQuit, got %v", err)
		}
		if string(chunk) != "quit\n" {
			t.Errorf("chunk = %q, want %q", chunk, "quit\n")
		}
	})

	t.Run("QuitAsSubstringIsNotQuit", func(t *testing.T) {
		ep := NewTerminalEndpoint(strings.NewReader("quitter\n"), io.Discard)

		if _, err := ep.Source.Next(); err != nil {
			t.Errorf("expected plain line, got error %v", err)
		}
	})
}

func TestChunkSource(t *testing.T) {
	t.Run("BoundedChunks", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), ChunkSize+100)
		ep := NewStreamEndpoint(bytes.NewReader(payload), io.Discard)

		var got []byte
		for {
			chunk, err := ep.Source.Next()
			if len(chunk) > ChunkSize {
				t.Fatalf("chunk of %d bytes exceeds limit", len(chunk))
			}
			got = append(got, chunk...)
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
		}

		if !bytes.Equal(got, payload) {
			t.Errorf("reassembled %d bytes, want %d", len(got), len(payload))
		}
	})

	t.Run("NoDelimiterSemantics", func(t *testing.T) {
		// A stream source must pass bytes through untouched, newline or not.
		ep := NewStreamEndpoint(strings.NewReader("bestmove e2e4"), io.Discard)

		chunk, err := ep.Source.Next()
		if err != nil && err != io.EOF {
			t.Fatalf("Next: %v", err)
		}
		if string(chunk) != "bestmove e2e4" {
			t.Errorf("chunk = %q", chunk)
		}
	})
}
