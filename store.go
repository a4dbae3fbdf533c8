package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/jsonc"
)

const linesFile = "lines.json"

var errImageNotFound = errors.New("image not found")

// store persists slot images and the submitted text lines.
type store interface {
	LoadImage(slot int) ([]byte, error)
	SaveImage(slot int, data []byte) error
	LoadLines() ([]string, error)
	SaveLines(lines []string) error
}

// dirStore keeps <slot>.png files and lines.json in one directory.
type dirStore struct {
	dir string
}

func newDirStore(dir string) (*dirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images dir: %w", err)
	}
	return &dirStore{dir: dir}, nil
}

func (s *dirStore) imagePath(slot int) string {
	return filepath.Join(s.dir, strconv.Itoa(slot)+".png")
}

func (s *dirStore) LoadImage(slot int) ([]byte, error) {
	data, err := os.ReadFile(s.imagePath(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("slot %d: %w", slot, errImageNotFound)
	}
	return data, err
}

func (s *dirStore) SaveImage(slot int, data []byte) error {
	return writeFileAtomic(s.imagePath(slot), data)
}

// LoadLines returns nil when the file is missing. Comments and trailing
// commas are tolerated for hand-edited files.
func (s *dirStore) LoadLines() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, linesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	if err := json.Unmarshal(jsonc.ToJSON(data), &lines); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", linesFile, err)
	}
	return lines, nil
}

func (s *dirStore) SaveLines(lines []string) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, linesFile), data)
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
