package registry

import (
	"errors"
	"testing"
)

func newTestRegistry(t *testing.T) *Static {
	t.Helper()
	reg, err := NewStatic(
		TypeSpec{Name: "page", DisplayName: "Page", Container: true},
		TypeSpec{
			Name:            "columns",
			DisplayName:     "Columns",
			Container:       true,
			AllowedChildren: []string{"column"},
		},
		TypeSpec{Name: "column", DisplayName: "Column", Container: true},
		TypeSpec{
			Name:        "paragraph",
			DisplayName: "Paragraph",
			Defaults:    map[string]any{"text": ""},
		},
	)
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	return reg
}

func TestIsContainer(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		blockType string
		want      bool
	}{
		{"page", true},
		{"column", true},
		{"paragraph", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := reg.IsContainer(tt.blockType); got != tt.want {
			t.Errorf("IsContainer(%q) = %v, want %v", tt.blockType, got, tt.want)
		}
	}
}

func TestCanContain(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name          string
		parent, child string
		want          bool
		wantErr       error
	}{
		{"unrestricted container", "page", "paragraph", true, nil},
		{"restricted allows listed", "columns", "column", true, nil},
		{"restricted rejects unlisted", "columns", "paragraph", false, nil},
		{"non-container parent", "paragraph", "paragraph", false, nil},
		{"unknown parent", "widget", "paragraph", false, ErrUnknownType},
		{"unknown child", "page", "widget", false, ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.CanContain(tt.parent, tt.child)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanContain(%q, %q) error = %v, want %v", tt.parent, tt.child, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CanContain(%q, %q) = %v, want %v", tt.parent, tt.child, got, tt.want)
			}
		})
	}
}

func TestDefaultProperties(t *testing.T) {
	reg := newTestRegistry(t)

	props := reg.DefaultProperties("paragraph")
	if props["text"] != "" {
		t.Errorf("paragraph defaults = %v, want text key", props)
	}

	// Returned map is caller-owned.
	props["text"] = "mutated"
	if again := reg.DefaultProperties("paragraph"); again["text"] != "" {
		t.Error("DefaultProperties returned a shared map")
	}

	if props := reg.DefaultProperties("unknown"); len(props) != 0 {
		t.Errorf("unknown type defaults = %v, want empty", props)
	}
}

func TestNewStaticDuplicate(t *testing.T) {
	_, err := NewStatic(
		TypeSpec{Name: "page"},
		TypeSpec{Name: "page"},
	)
	if !errors.Is(err, ErrTypeAlreadyRegistered) {
		t.Errorf("duplicate registration error = %v, want ErrTypeAlreadyRegistered", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[[types]]
name = "page"
display_name = "Page"
container = true

[[types]]
name = "paragraph"
display_name = "Paragraph"

[types.defaults]
text = "hello"
`)

	reg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reg.IsContainer("page") {
		t.Error("page should be a container")
	}
	if reg.IsContainer("paragraph") {
		t.Error("paragraph should not be a container")
	}
	if props := reg.DefaultProperties("paragraph"); props["text"] != "hello" {
		t.Errorf("paragraph defaults = %v", props)
	}
}

func TestParseMissingName(t *testing.T) {
	_, err := Parse([]byte("[[types]]\ncontainer = true\n"))
	if err == nil {
		t.Error("expected error for type entry without name")
	}
}

func TestParseInvalidTOML(t *testing.T) {
	_, err := Parse([]byte("not [valid"))
	if err == nil {
		t.Error("expected parse error")
	}
}
