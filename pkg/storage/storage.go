// Package storage persists run artifacts on the local filesystem: captured
// offer documents, per-run metadata, and the screenshot trail.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore lays artifacts out under a single output root:
//
//	<root>/offers/<portal>/<application>_<timestamp>.<ext>
//	<root>/offers/<portal>/<application>_<timestamp>.json
//	<root>/logs/screenshots/<prefix>_<timestamp>.png
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the output root directory.
func (s *FileStore) Root() string { return s.root }

// SaveOffer writes a captured document into the portal's offers directory
// and returns its path.
func (s *FileStore) SaveOffer(portal, applicationID string, content []byte, extension string) (string, error) {
	if extension == "" {
		extension = ".pdf"
	}

	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	dir := filepath.Join(s.root, "offers", sanitize(portal))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create offers directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s", sanitize(applicationID), timestamp(), extension)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write offer document: %w", err)
	}

	return path, nil
}

// SaveMetadata writes the run's metadata as JSON next to the offers for the
// same portal and returns its path.
func (s *FileStore) SaveMetadata(portal, applicationID string, metadata map[string]any) (string, error) {
	dir := filepath.Join(s.root, "offers", sanitize(portal))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create offers directory: %w", err)
	}

	content, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", sanitize(applicationID), timestamp()))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return path, nil
}

// SaveScreenshot appends a PNG to the screenshot trail and returns its path.
func (s *FileStore) SaveScreenshot(data []byte, prefix string) (string, error) {
	dir := filepath.Join(s.root, "logs", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", sanitize(prefix), timestamp()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	return path, nil
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

// sanitize keeps artifact names shell and filesystem safe.
func sanitize(name string) string {
	if name == "" {
		return "unknown"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
