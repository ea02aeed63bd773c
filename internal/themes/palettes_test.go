// SPDX-License-Identifier: MIT
package themes

import (
	"testing"

	"github.com/thatcatcamp/themecycle/internal/styles"
)

func TestBuiltinHasDefaultKey(t *testing.T) {
	if Builtin()[DefaultKey] == nil {
		t.Fatalf("default key %s not in builtin set", DefaultKey)
	}
}

func TestBuiltinKeysMatchDocuments(t *testing.T) {
	docs := Builtin()
	if len(docs) != len(BuiltinKeys()) {
		t.Fatalf("expected %d builtin documents, got %d", len(BuiltinKeys()), len(docs))
	}
	for _, key := range BuiltinKeys() {
		doc := docs[key]
		if doc == nil {
			t.Fatalf("missing builtin %s", key)
		}
		if doc.Styles.Body == nil || doc.Styles.Button == nil {
			t.Errorf("%s must style body and button", key)
		}
		if len(doc.Styles.Button.Colors) == 0 {
			t.Errorf("%s has no cycle colors", key)
		}
		if doc.Styles.Button.InitialColor != doc.Styles.Button.Colors[0] {
			t.Errorf("%s initial color should start the cycle", key)
		}
	}
}

func TestBuiltinReturnsFreshCopies(t *testing.T) {
	first := Builtin()
	first[DefaultKey].Styles.Button.Colors[0] = "#000000"

	if Builtin()[DefaultKey].Styles.Button.Colors[0] != "#4CAF50" {
		t.Fatal("builtin documents must not share state")
	}
}

func TestGenerateColors(t *testing.T) {
	docs := Builtin()

	solid := GenerateColors(docs["configs/config2.json"])
	if solid.Background != "#1a1a1a" || solid.Gradient != "" {
		t.Errorf("unexpected solid background summary: %+v", solid)
	}
	if solid.Button != "#6c5ce7" || len(solid.Cycle) != 6 {
		t.Errorf("unexpected button summary: %+v", solid)
	}

	gradient := GenerateColors(docs["configs/config3.json"])
	if gradient.Gradient == "" || gradient.Background != "#667eea" {
		t.Errorf("unexpected gradient summary: %+v", gradient)
	}
	if gradient.Heading != "#ffffff" || gradient.Selector != "#ffffff" {
		t.Errorf("unexpected text colors: %+v", gradient)
	}
}

func TestGenerateColorsSparseDocument(t *testing.T) {
	c := GenerateColors(&styles.Document{Styles: styles.Styles{
		Button: &styles.Block{Colors: []string{"#abc"}},
	}})
	if c.Button != "#abc" {
		t.Errorf("button should fall back to first cycle color, got %q", c.Button)
	}
	if c.Background != "" || c.Heading != "" {
		t.Errorf("absent roles should leave fields empty: %+v", c)
	}

	if GenerateColors(nil) == nil {
		t.Fatal("nil document should yield an empty summary")
	}
}

func TestFirstHex(t *testing.T) {
	tests := map[string]string{
		"linear-gradient(135deg, #667eea 0%, #764ba2 100%)": "#667eea",
		"radial-gradient(#fff, #000)":                       "#fff",
		"linear-gradient(red, blue)":                        "",
		"#12345":                                            "",
	}
	for in, want := range tests {
		if got := firstHex(in); got != want {
			t.Errorf("firstHex(%q) = %q, want %q", in, got, want)
		}
	}
}
