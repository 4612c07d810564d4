package docfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/blockedit/internal/engine/block"
)

func testDocument() *block.Document {
	return &block.Document{
		Blocks: []*block.Block{
			{
				ID:   "sec1",
				Type: "section",
				Children: []*block.Block{
					{ID: "p1", Type: "paragraph", Properties: map[string]any{"text": "hello"}},
				},
			},
			{ID: "p2", Type: "paragraph"},
		},
		Meta: map[string]any{"title": "notes"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := Save(path, testDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := doc.FlatIDs(); len(got) != 3 {
		t.Fatalf("FlatIDs = %v, want 3 ids", got)
	}
	p1 := doc.FindByID("p1")
	if p1 == nil || p1.Properties["text"] != "hello" {
		t.Errorf("p1 = %+v", p1)
	}
	if doc.Meta["title"] != "notes" {
		t.Errorf("Meta = %v", doc.Meta)
	}
}

func TestSaveNilDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := Save(path, nil); !errors.Is(err, ErrNilDocument) {
		t.Errorf("Save(nil) = %v, want ErrNilDocument", err)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := Save(path, testDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, block.NewDocument()); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("Len = %d, want 0", doc.Len())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse("doc.json", []byte("{not json"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("error = %v, want *FormatError", err)
	}
}

func TestParseNewerVersionRejected(t *testing.T) {
	_, err := Parse("doc.json", []byte(`{"version": 99, "document": {"blocks": []}}`))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseAssignsMissingIDs(t *testing.T) {
	doc, err := Parse("doc.json", []byte(`{
		"version": 1,
		"document": {"blocks": [
			{"type": "paragraph"},
			{"type": "paragraph", "id": "p2"}
		]}
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Blocks[0].ID == "" {
		t.Error("missing ID should be assigned")
	}
	if doc.Blocks[0].ID == doc.Blocks[1].ID {
		t.Error("assigned ID collides with an existing one")
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse("doc.json", []byte(`{
		"version": 1,
		"document": {"blocks": [
			{"type": "paragraph", "id": "p1"},
			{"type": "section", "id": "s1", "children": [
				{"type": "paragraph", "id": "p1"}
			]}
		]}
	}`))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestParseEmptyEnvelope(t *testing.T) {
	doc, err := Parse("doc.json", []byte(`{"version": 1}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc == nil || doc.Len() != 0 {
		t.Errorf("doc = %+v, want an empty document", doc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
