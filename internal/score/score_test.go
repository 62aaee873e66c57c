package score

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func newStore(path string) *FileStore {
	return NewFileStore(path, log.New(io.Discard))
}

func TestMissingFileIsNoScore(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "hs.yaml"))
	if _, err := s.Read(); !errors.Is(err, ErrNoScore) {
		t.Fatalf("err = %v, want ErrNoScore", err)
	}
	if got := s.Load(); got != 0 {
		t.Fatalf("Load = %d", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.yaml")
	s := newStore(path)
	s.Save(1234)

	if got := newStore(path).Load(); got != 1234 {
		t.Fatalf("Load = %d, want 1234", got)
	}
}

func TestCorruptFileDegradesToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.yaml")
	if err := os.WriteFile(path, []byte("high_score: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(path)
	if _, err := s.Read(); err == nil || errors.Is(err, ErrNoScore) {
		t.Fatalf("err = %v, want parse error", err)
	}
	if got := s.Load(); got != 0 {
		t.Fatalf("Load = %d", got)
	}
}

func TestSaveToMissingDirectoryIsSwallowed(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "missing", "hs.yaml"))
	if err := s.Write(5); err == nil {
		t.Fatal("Write into a missing directory succeeded")
	}
	s.Save(5)
}

func TestEmptyPathDisablesPersistence(t *testing.T) {
	s := newStore("")
	if err := s.Write(10); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); got != 0 {
		t.Fatalf("Load = %d", got)
	}
}

func TestSaveNeverLowersScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.yaml")
	a, b := newStore(path), newStore(path)
	a.Save(500)
	b.Save(300)

	if got := newStore(path).Load(); got != 500 {
		t.Fatalf("Load = %d, want 500", got)
	}
}
