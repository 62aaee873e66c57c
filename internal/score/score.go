// Package score persists the high score in a small YAML file.
package score

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrNoScore is returned by Read when nothing has been stored yet.
var ErrNoScore = errors.New("no stored high score")

type record struct {
	HighScore int       `yaml:"high_score"`
	SavedAt   time.Time `yaml:"saved_at"`
}

// FileStore keeps the high score at a file path. It is safe for concurrent
// use by several sessions. An empty path disables persistence.
type FileStore struct {
	path   string
	logger *log.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Read returns the stored high score.
func (s *FileStore) Read() (int, error) {
	if s.path == "" {
		return 0, ErrNoScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNoScore
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	var r record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("parse high score %s: %w", s.path, err)
	}
	if r.HighScore < 0 {
		return 0, fmt.Errorf("parse high score %s: negative value %d", s.path, r.HighScore)
	}
	return r.HighScore, nil
}

// Write stores score, replacing the file atomically.
func (s *FileStore) Write(score int) error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(record{HighScore: score, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// Load returns the stored high score, or 0 when there is none or it
// cannot be read.
func (s *FileStore) Load() int {
	v, err := s.Read()
	if err != nil {
		if !errors.Is(err, ErrNoScore) {
			s.logger.Warn("high score unavailable", "path", s.path, "err", err)
		}
		return 0
	}
	return v
}

// Save stores score, logging and skipping on failure. A score at or below
// the stored one is ignored, since several sessions may share the file.
func (s *FileStore) Save(score int) {
	if cur, err := s.Read(); err == nil && cur >= score {
		return
	}
	if err := s.Write(score); err != nil {
		s.logger.Warn("high score not saved", "path", s.path, "err", err)
	}
}
