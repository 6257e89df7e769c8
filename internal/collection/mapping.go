package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Mapping associates collection names with the discussion numbers whose
// resources the collection aggregates.
type Mapping map[string][]int

// MappingStore reads and writes the collection mapping JSON document.
type MappingStore struct {
	dataDir string
}

// NewMappingStore creates a mapping store rooted at dataDir.
func NewMappingStore(dataDir string) *MappingStore {
	return &MappingStore{dataDir: dataDir}
}

func (s *MappingStore) path() string {
	return filepath.Join(s.dataDir, "collections.json")
}

// Load reads the mapping document. A missing file is not an error: an
// empty mapping is returned so a fresh deployment starts clean.
func (s *MappingStore) Load() (Mapping, error) {
	if _, err := os.Stat(s.path()); os.IsNotExist(err) {
		return Mapping{}, nil
	}

	file, err := os.Open(s.path())
	if err != nil {
		return nil, fmt.Errorf("failed to open collection mapping: %w", err)
	}
	defer file.Close()

	var m Mapping
	if err := json.NewDecoder(file).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode collection mapping: %w", err)
	}

	return m, nil
}

// Save writes the mapping document, creating the data directory as
// needed.
func (s *MappingStore) Save(m Mapping) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create mapping directory: %w", err)
	}

	file, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode collection mapping: %w", err)
	}

	return nil
}

// Discussions returns the discussion numbers mapped to a collection, or
// nil when the collection is unknown.
func (s *MappingStore) Discussions(name string) ([]int, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	return m[name], nil
}
