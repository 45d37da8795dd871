// Package history persists conversations as YAML files, one file per
// request, under the gitmate data directory.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	dataDirName     = ".gitmate"
	conversationDir = "conversations"
	timeLayout      = "2006-01-02 15:04:05"
	fileTimeLayout  = "20060102_150405"
)

// Metadata carries the record timestamps.
type Metadata struct {
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

// Record is one saved conversation. AIResponse is filled in after the
// pipeline produces an answer.
type Record struct {
	ID         string   `yaml:"id"`
	UserInput  string   `yaml:"user_input"`
	Metadata   Metadata `yaml:"metadata"`
	AIResponse string   `yaml:"ai_response,omitempty"`
}

// Store reads and writes conversation records in a directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir, or ~/.gitmate/conversations when
// dir is empty.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, dataDirName, conversationDir)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Save writes a new conversation record for the user message and returns the
// file path for the later response update.
func (s *Store) Save(message string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create conversations directory: %w", err)
	}

	now := s.now()
	record := Record{
		ID:        uuid.NewString(),
		UserInput: message,
		Metadata: Metadata{
			CreatedAt: now.Format(timeLayout),
			UpdatedAt: now.Format(timeLayout),
		},
	}

	path := filepath.Join(s.dir, fmt.Sprintf("conversation_%s.yaml", now.Format(fileTimeLayout)))
	if err := s.write(path, record); err != nil {
		return "", err
	}
	return path, nil
}

// Update fills in the AI response and bumps the updated_at timestamp,
// leaving the rest of the record untouched.
func (s *Store) Update(path, response string) error {
	record, err := s.read(path)
	if err != nil {
		return err
	}

	record.AIResponse = response
	record.Metadata.UpdatedAt = s.now().Format(timeLayout)
	return s.write(path, *record)
}

// LoadLatest returns the most recently modified conversation record, or nil
// when none exist.
func (s *Store) LoadLatest() (*Record, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "conversation_*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	var latest string
	var latestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return nil, nil
	}

	return s.read(latest)
}

func (s *Store) write(path string, record Record) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize conversation: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write conversation file: %w", err)
	}
	return nil
}

func (s *Store) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation file: %w", err)
	}

	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse conversation file %s: %w", path, err)
	}
	return &record, nil
}
