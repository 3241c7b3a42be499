package kv

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// fileStore keeps the whole mapping in one JSON document on disk, rewritten
// after every SetItem. Suited to the small state this app carries.
type fileStore struct {
	path string
	data map[string]string
}

// OpenFile opens (or creates) a JSON-file-backed store at path. A missing
// or unparsable file starts the store empty rather than failing.
func OpenFile(path string) (Store, error) {
	s := &fileStore{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = map[string]string{}
	}
	return s, nil
}

func (s *fileStore) GetItem(key string) (string, bool) {
	value, ok := s.data[key]
	return value, ok
}

func (s *fileStore) SetItem(key, value string) error {
	s.data[key] = value
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o644)
}

func (s *fileStore) Close() error { return nil }
