package relay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestTrafficLogMarkers(t *testing.T) {
	var buf bytes.Buffer
	log := NewTrafficLog(&buf)

	log.Tee(DirectionOutgoing, []byte("go depth 20\n"))
	log.Tee(DirectionIncoming, []byte("bestmove e2e4\n"))

	want := ">> go depth 20\n<< bestmove e2e4\n"
	if buf.String() != want {
		t.Errorf("log = %q, want %q", buf.String(), want)
	}
}

func TestTrafficLogNilIsNoop(t *testing.T) {
	var log *TrafficLog

	// Must not panic.
	log.Tee(DirectionOutgoing, []byte("uci\n"))
	if err := log.Close(); err != nil {
		t.Errorf("Close on nil log: %v", err)
	}
}

func TestTrafficLogSwallowsWriteErrors(t *testing.T) {
	log := NewTrafficLog(failingWriter{})

	// Must not panic or propagate anything.
	log.Tee(DirectionOutgoing, []byte("uci\n"))
	log.Tee(DirectionIncoming, []byte("id name engine\n"))
}

func TestTrafficLogConcurrentChunksStayIntact(t *testing.T) {
	var buf syncBuffer
	log := NewTrafficLog(&buf)

	const perDirection = 50

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perDirection; i++ {
			log.Tee(DirectionOutgoing, fmt.Appendf(nil, "out-%03d\n", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perDirection; i++ {
			log.Tee(DirectionIncoming, fmt.Appendf(nil, "in-%03d\n", i))
		}
	}()
	wg.Wait()

	var out, in int
	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ">> out-"):
			out++
		case strings.HasPrefix(line, "<< in-"):
			in++
		default:
			t.Errorf("malformed record: %q", line)
		}
	}

	if out != perDirection || in != perDirection {
		t.Errorf("got %d outgoing and %d incoming records, want %d each", out, in, perDirection)
	}
}

func TestOpenTrafficLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uci.log")

	log, err := OpenTrafficLog(path)
	if err != nil {
		t.Fatalf("OpenTrafficLog: %v", err)
	}
	log.Tee(DirectionOutgoing, []byte("uci\n"))
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	log, err = OpenTrafficLog(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	log.Tee(DirectionIncoming, []byte("uciok\n"))
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	want := ">> uci\n<< uciok\n"
	if string(data) != want {
		t.Errorf("log file = %q, want %q", data, want)
	}
}

// syncBuffer serializes reads and writes; the log's own mutex covers writers,
// but the final read races the last Tee without it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
