package document

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/registry"
)

func newTestRegistry(t *testing.T) *registry.Static {
	t.Helper()
	reg, err := registry.NewStatic(
		registry.TypeSpec{Name: "page", Container: true},
		registry.TypeSpec{Name: "section", Container: true},
		registry.TypeSpec{Name: "paragraph", Defaults: map[string]any{"text": ""}},
	)
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	return reg
}

// newTestStore builds a store over:
//
//	page1
//	  sec1
//	    para1
//	  para2
//	para3
func newTestStore(t *testing.T) *Store {
	t.Helper()
	doc := &block.Document{
		Blocks: []*block.Block{
			{
				ID:   "page1",
				Type: "page",
				Children: []*block.Block{
					{
						ID:       "sec1",
						Type:     "section",
						Children: []*block.Block{{ID: "para1", Type: "paragraph"}},
					},
					{ID: "para2", Type: "paragraph"},
				},
			},
			{ID: "para3", Type: "paragraph"},
		},
	}
	return NewStoreFromDocument(newTestRegistry(t), doc)
}

func rootIDs(s *Store) []string {
	var ids []string
	for _, b := range s.Document().Blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestInsertAtRoot(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(&block.Block{ID: "new1", Type: "paragraph"}, RootID, 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	want := []string{"page1", "new1", "para3"}
	if got := rootIDs(s); !reflect.DeepEqual(got, want) {
		t.Errorf("roots = %v, want %v", got, want)
	}
}

func TestInsertIndexClamped(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"negative appends", -1, []string{"page1", "para3", "x"}},
		{"past end appends", 99, []string{"page1", "para3", "x"}},
		{"zero prepends", 0, []string{"x", "page1", "para3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := s.Insert(&block.Block{ID: "x", Type: "paragraph"}, RootID, tt.index); err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if got := rootIDs(s); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("roots = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertIntoParent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(&block.Block{ID: "new1", Type: "paragraph"}, "sec1", 0); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	sec := s.Document().FindByID("sec1")
	if len(sec.Children) != 2 || sec.Children[0].ID != "new1" {
		t.Errorf("sec1 children = %v", sec.Children)
	}
}

func TestInsertParentNotFound(t *testing.T) {
	s := newTestStore(t)
	before := s.Document()

	err := s.Insert(&block.Block{ID: "new1", Type: "paragraph"}, "missing", 0)
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("Insert error = %v, want ErrParentNotFound", err)
	}
	if s.Document() != before {
		t.Error("failed insert must not replace the document")
	}
}

func TestInsertGeneratesID(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(&block.Block{Type: "paragraph"}, RootID, -1); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	roots := s.Document().Blocks
	id := roots[len(roots)-1].ID
	if id == "" {
		t.Error("inserted block should receive a generated ID")
	}
}

func TestInsertAttachesChildSlotForContainers(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(&block.Block{ID: "sec2", Type: "section"}, RootID, -1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if sec := s.Document().FindByID("sec2"); !sec.HasChildSlot() {
		t.Error("container insert should attach an empty children list")
	}

	if err := s.Insert(&block.Block{ID: "p", Type: "paragraph"}, RootID, -1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if p := s.Document().FindByID("p"); p.HasChildSlot() {
		t.Error("non-container insert should not attach a children list")
	}
}

func TestInsertDuplicateID(t *testing.T) {
	s := newTestStore(t)

	err := s.Insert(&block.Block{ID: "para1", Type: "paragraph"}, RootID, 0)
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Insert error = %v, want ErrDuplicateID", err)
	}
}

func TestInsertNil(t *testing.T) {
	s := newTestStore(t)
	if err := s.Insert(nil, RootID, 0); !errors.Is(err, ErrNilBlock) {
		t.Errorf("Insert(nil) error = %v, want ErrNilBlock", err)
	}
}

func TestInsertCopiesBlock(t *testing.T) {
	s := newTestStore(t)

	b := &block.Block{ID: "x", Type: "paragraph", Properties: map[string]any{"text": "hi"}}
	if err := s.Insert(b, RootID, -1); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	b.Properties["text"] = "mutated"
	if got := s.Document().FindByID("x").Properties["text"]; got != "hi" {
		t.Errorf("stored block aliases caller's block: text = %v", got)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	removed, err := s.Delete("sec1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	wantRemoved := []string{"sec1", "para1"}
	if !reflect.DeepEqual(removed, wantRemoved) {
		t.Errorf("removed = %v, want %v", removed, wantRemoved)
	}
	if s.Document().Contains("sec1") || s.Document().Contains("para1") {
		t.Error("deleted subtree still present")
	}
	if !s.Document().Contains("para2") {
		t.Error("sibling was removed")
	}
}

func TestDeleteRoot(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Delete("para3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	want := []string{"page1"}
	if got := rootIDs(s); !reflect.DeepEqual(got, want) {
		t.Errorf("roots = %v, want %v", got, want)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestMove(t *testing.T) {
	s := newTestStore(t)

	if err := s.Move("para2", RootID, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}

	want := []string{"para2", "page1", "para3"}
	if got := rootIDs(s); !reflect.DeepEqual(got, want) {
		t.Errorf("roots = %v, want %v", got, want)
	}
	if page := s.Document().FindByID("page1"); len(page.Children) != 1 {
		t.Errorf("page1 children = %v, want only sec1", page.Children)
	}
}

func TestMoveIntoContainer(t *testing.T) {
	s := newTestStore(t)

	if err := s.Move("para3", "sec1", -1); err != nil {
		t.Fatalf("Move: %v", err)
	}

	sec := s.Document().FindByID("sec1")
	if len(sec.Children) != 2 || sec.Children[1].ID != "para3" {
		t.Errorf("sec1 children = %v", sec.Children)
	}
}

func TestMoveWithinSameParent(t *testing.T) {
	// Index is interpreted after detachment: moving the first root to
	// index 1 of [page1 para3] - page1 = [para3] lands it after para3.
	s := newTestStore(t)

	if err := s.Move("page1", RootID, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}

	want := []string{"para3", "page1"}
	if got := rootIDs(s); !reflect.DeepEqual(got, want) {
		t.Errorf("roots = %v, want %v", got, want)
	}
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		newParent string
		wantErr   error
	}{
		{"missing block", "missing", RootID, ErrNotFound},
		{"missing parent", "para3", "missing", ErrParentNotFound},
		{"onto itself", "sec1", "sec1", ErrWouldCreateCycle},
		{"into own descendant", "page1", "sec1", ErrWouldCreateCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			before := s.Document()

			err := s.Move(tt.id, tt.newParent, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Move error = %v, want %v", err, tt.wantErr)
			}
			// Atomicity: failed moves leave the document untouched.
			if s.Document() != before {
				t.Error("failed move replaced the document")
			}
		})
	}
}

func TestUpdateProperties(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateProperties("para1", map[string]any{"text": "hi", "bold": true}); err != nil {
		t.Fatalf("UpdateProperties: %v", err)
	}
	if err := s.UpdateProperties("para1", map[string]any{"bold": false}); err != nil {
		t.Fatalf("UpdateProperties: %v", err)
	}

	props := s.Document().FindByID("para1").Properties
	if props["text"] != "hi" {
		t.Error("shallow merge dropped untouched key")
	}
	if props["bold"] != false {
		t.Error("shallow merge did not overwrite key")
	}
}

func TestUpdatePropertiesNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateProperties("missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProperties error = %v, want ErrNotFound", err)
	}
}

func TestReplaceChildren(t *testing.T) {
	s := newTestStore(t)

	kids := []*block.Block{
		{ID: "n1", Type: "paragraph"},
		{ID: "n2", Type: "paragraph"},
	}
	if err := s.ReplaceChildren("sec1", kids); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	sec := s.Document().FindByID("sec1")
	if len(sec.Children) != 2 || sec.Children[0].ID != "n1" {
		t.Errorf("sec1 children = %v", sec.Children)
	}
	if s.Document().Contains("para1") {
		t.Error("old children should be gone")
	}
}

func TestReplaceChildrenErrors(t *testing.T) {
	s := newTestStore(t)

	if err := s.ReplaceChildren("missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if err := s.ReplaceChildren("para2", nil); !errors.Is(err, ErrNotAContainer) {
		t.Errorf("error = %v, want ErrNotAContainer", err)
	}
}

func TestCopyOnWriteKeepsOldSnapshots(t *testing.T) {
	s := newTestStore(t)
	before := s.Document()

	if err := s.Insert(&block.Block{ID: "x", Type: "paragraph"}, RootID, -1); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if before.Contains("x") {
		t.Error("prior snapshot sees the new block")
	}
	if !s.Document().Contains("x") {
		t.Error("live document missing the new block")
	}
}

func TestAcyclicityAfterMutations(t *testing.T) {
	// Property check: no reachable tree lets a block appear on the
	// ancestor path of one of its own descendants.
	s := newTestStore(t)
	_ = s.Move("para3", "sec1", 0)
	_ = s.Move("sec1", "page1", 0)
	_ = s.Insert(&block.Block{ID: "sec2", Type: "section"}, "sec1", -1)

	doc := s.Document()
	for _, id := range doc.FlatIDs() {
		for _, descID := range doc.SubtreeIDs(id)[1:] {
			if doc.IsAncestor(descID, id) {
				t.Fatalf("block %s is both ancestor and descendant of %s", descID, id)
			}
		}
	}
}
