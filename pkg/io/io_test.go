package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

func testPicks() []pattern.Placement {
	red := source.RGB{R: 255}
	blue := source.RGB{B: 255}
	return []pattern.Placement{
		{X: 10, Y: 10, Z: 15, Angle: 90, Color: red},
		{X: 22.5, Y: 10, Z: 15, Angle: 90, Color: red},
		{X: 35, Y: 10, Z: 15, Angle: 90, Color: blue},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	picks := testPicks()
	doc := NewDocument("doc-1", picks, Board{Width: 400, Height: 300}, 12.5)

	if doc.Count != 3 {
		t.Errorf("Count = %d, want 3", doc.Count)
	}
	if len(doc.Palette) != 2 {
		t.Fatalf("palette entries = %d, want 2", len(doc.Palette))
	}
	if doc.Palette[0].Hex != "#ff0000" || doc.Palette[0].Count != 2 {
		t.Errorf("palette[0] = %+v, want red x2 first", doc.Palette[0])
	}

	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}

	got, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}

	if got.ID != "doc-1" {
		t.Errorf("ID = %q, want %q", got.ID, "doc-1")
	}
	if got.Board != doc.Board {
		t.Errorf("Board = %+v, want %+v", got.Board, doc.Board)
	}
	if got.Spacing != 12.5 {
		t.Errorf("Spacing = %v, want 12.5", got.Spacing)
	}

	back := got.Placements()
	if len(back) != len(picks) {
		t.Fatalf("Placements() returned %d picks, want %d", len(back), len(picks))
	}
	for i := range back {
		if back[i] != picks[i] {
			t.Errorf("pick %d = %+v, want %+v", i, back[i], picks[i])
		}
	}
}

func TestReadDocumentCountRepair(t *testing.T) {
	doc := NewDocument("doc-2", testPicks(), Board{Width: 100, Height: 100}, 5)
	doc.Count = 99

	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}

	got, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3 (pick list wins)", got.Count)
	}
}

func TestReadDocumentInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"board":`},
		{"zero board", `{"board":{"width":0,"height":100},"picks":[{"x":1,"y":1,"color":"#ff0000"}]}`},
		{"no picks", `{"board":{"width":100,"height":100},"picks":[]}`},
		{"bad color", `{"board":{"width":100,"height":100},"picks":[{"x":1,"y":1,"color":"red"}]}`},
		{"short hex", `{"board":{"width":100,"height":100},"picks":[{"x":1,"y":1,"color":"#f00"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDocument(strings.NewReader(tt.data)); err == nil {
				t.Error("ReadDocument() should reject invalid document")
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	doc := NewDocument("doc-3", testPicks(), Board{Width: 200, Height: 100}, 10)

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got.ID != "doc-3" || got.Count != 3 {
		t.Errorf("ReadFile() = id %q count %d, want doc-3 / 3", got.ID, got.Count)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadFile() should fail on a missing file")
	}
}
