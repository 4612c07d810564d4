package docfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/blockedit/internal/engine/block"
)

// CurrentVersion is the document file format version written by Save.
const CurrentVersion = 1

// fileFormat is the on-disk envelope around a document.
type fileFormat struct {
	Version  int             `json:"version"`
	Document *block.Document `json:"document"`
}

// Save writes the document to path as JSON. The write goes through a
// temporary file in the same directory and a rename, so a crash never
// leaves a half-written document behind.
func Save(path string, doc *block.Document) error {
	if doc == nil {
		return fmt.Errorf("saving %s: %w", path, ErrNilDocument)
	}

	data, err := json.MarshalIndent(fileFormat{
		Version:  CurrentVersion,
		Document: doc,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".blockedit-*.tmp")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Load reads a document from path. Blocks that arrive without an ID
// are assigned a fresh one; duplicate IDs are rejected.
func Load(path string) (*block.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates document JSON. The path only labels
// errors.
func Parse(path string, data []byte) (*block.Document, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	if f.Version > CurrentVersion {
		return nil, &FormatError{
			Path: path,
			Err:  fmt.Errorf("%w: version %d", ErrUnsupportedVersion, f.Version),
		}
	}
	doc := f.Document
	if doc == nil {
		doc = block.NewDocument()
	}
	if doc.Meta == nil {
		doc.Meta = make(map[string]any)
	}

	if err := repair(doc); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return doc, nil
}

// repair fills in missing block IDs and rejects duplicates.
func repair(doc *block.Document) error {
	seen := make(map[string]bool)
	var walkErr error
	doc.Walk(func(b, _ *block.Block) bool {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if seen[b.ID] {
			walkErr = fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
			return false
		}
		seen[b.ID] = true
		return true
	})
	return walkErr
}
