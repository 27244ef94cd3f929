package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags"`
	Extra string   `json:"extra,omitempty"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{ID: "a", Tags: []string{"x"}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := buf.String(), "{\"id\":\"a\",\"tags\":[\"x\"]}\n"; got != want {
		t.Fatalf("json:\n got: %q\nwant: %q", got, want)
	}
}

func TestWrite_YAMLUsesJSONTags(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{ID: "a", Tags: []string{"x"}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "id: a") || !strings.Contains(out, "- x") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	if strings.Contains(out, "extra") {
		t.Fatalf("expected omitempty to be honoured:\n%s", out)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample{}, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
