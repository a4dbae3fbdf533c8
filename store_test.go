package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// memStore is an in-memory store for board tests.
type memStore struct {
	images   map[int][]byte
	lines    []string
	linesErr error
	saves    int
}

func newMemStore() *memStore {
	return &memStore{images: map[int][]byte{}}
}

func (s *memStore) LoadImage(slot int) ([]byte, error) {
	data, ok := s.images[slot]
	if !ok {
		return nil, errImageNotFound
	}
	return data, nil
}

func (s *memStore) SaveImage(slot int, data []byte) error {
	s.images[slot] = data
	s.saves++
	return nil
}

func (s *memStore) LoadLines() ([]string, error) {
	return s.lines, s.linesErr
}

func (s *memStore) SaveLines(lines []string) error {
	s.lines = append([]string(nil), lines...)
	return nil
}

func TestDirStoreImages(t *testing.T) {
	dir := t.TempDir()
	s, err := newDirStore(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatalf("newDirStore failed: %v", err)
	}

	if _, err := s.LoadImage(1); !errors.Is(err, errImageNotFound) {
		t.Fatalf("Expected errImageNotFound, got %v", err)
	}

	if err := s.SaveImage(1, []byte("png")); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	data, err := s.LoadImage(1)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("Expected %q, got %q", "png", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "images", "1.png")); err != nil {
		t.Errorf("Expected images/1.png on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "images", "1.png.tmp")); !os.IsNotExist(err) {
		t.Errorf("Temp file left behind: %v", err)
	}
}

func TestDirStoreLines(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("newDirStore failed: %v", err)
	}

	lines, err := s.LoadLines()
	if err != nil || lines != nil {
		t.Fatalf("Expected no lines and no error, got %v, %v", lines, err)
	}

	want := []string{"Amazing Grace", "", "", "", "", ""}
	if err := s.SaveLines(want); err != nil {
		t.Fatalf("SaveLines failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, linesFile))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(raw) != `["Amazing Grace","","","","",""]` {
		t.Errorf("Unexpected lines.json: %s", raw)
	}

	got, err := s.LoadLines()
	if err != nil {
		t.Fatalf("LoadLines failed: %v", err)
	}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDirStoreLinesToleratesComments(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("newDirStore failed: %v", err)
	}
	content := "[\n  // board 1\n  \"Be Thou\", \"My Vision\",\n]\n"
	if err := os.WriteFile(filepath.Join(s.dir, linesFile), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	lines, err := s.LoadLines()
	if err != nil {
		t.Fatalf("LoadLines failed: %v", err)
	}
	if len(lines) != 2 || lines[1] != "My Vision" {
		t.Errorf("Unexpected lines %q", lines)
	}
}

func TestDirStoreLinesInvalid(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("newDirStore failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, linesFile), []byte(`{"not": "a list"}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := s.LoadLines(); err == nil {
		t.Error("Expected parse error")
	}
}
