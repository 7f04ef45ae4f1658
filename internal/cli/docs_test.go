package cli

import (
	"strings"
	"testing"
	"testing/fstest"

	builtindocs "github.com/hobbyparts/hpt/docs"
)

func TestBundledDocsTopicsExist(t *testing.T) {
	topics, err := loadDocsTopics(builtindocs.FS)
	if err != nil {
		t.Fatalf("loadDocsTopics: %v", err)
	}
	if len(topics) == 0 {
		t.Fatalf("expected bundled topics")
	}
	for _, topic := range topics {
		content, err := builtindocs.FS.ReadFile(topic.Path)
		if err != nil {
			t.Fatalf("topic %s: %v", topic.ID, err)
		}
		if !strings.HasPrefix(string(content), "# ") {
			t.Fatalf("topic %s should start with a heading", topic.ID)
		}
	}
}

func TestLoadDocsTopicsRejectsIncompleteEntries(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.yaml": {Data: []byte("topics:\n  - id: servers\n    title: Servers\n")},
	}
	if _, err := loadDocsTopics(fsys); err == nil {
		t.Fatalf("expected an error for a topic without a path")
	}
}

func TestLoadDocsTopicsKeepsPathsInsideGuide(t *testing.T) {
	fsys := fstest.MapFS{
		"guide/index.yaml": {Data: []byte("topics:\n  - id: escape\n    path: ../../etc/passwd\n")},
	}
	topics, err := loadDocsTopics(fsys)
	if err != nil {
		t.Fatalf("loadDocsTopics: %v", err)
	}
	if topics[0].Path != "guide/etc/passwd" {
		t.Fatalf("path = %q, want guide/etc/passwd", topics[0].Path)
	}
	if topics[0].Title != "escape" {
		t.Fatalf("title = %q, want the id as fallback", topics[0].Title)
	}
}

func TestFindDocsTopic(t *testing.T) {
	topics := []docsTopic{
		{ID: "json-output", Title: "JSON output for scripts"},
		{ID: "servers", Title: "Servers, tokens and precedence"},
	}
	tests := []struct {
		input  string
		wantID string
		wantOK bool
	}{
		{input: "servers", wantID: "servers", wantOK: true},
		{input: "JSON Output", wantID: "json-output", wantOK: true},
		{input: "json output for scripts", wantID: "json-output", wantOK: true},
		{input: "placement", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := findDocsTopic(topics, tt.input)
		if ok != tt.wantOK || got.ID != tt.wantID {
			t.Fatalf("findDocsTopic(%q) = %q, %v; want %q, %v", tt.input, got.ID, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestDocsCommandJSON(t *testing.T) {
	prev := jsonOutput
	t.Cleanup(func() { jsonOutput = prev })
	jsonOutput = true

	out := captureStdout(t, func() {
		if err := docsCmd.RunE(docsCmd, []string{"servers"}); err != nil {
			t.Fatalf("docsCmd.RunE: %v", err)
		}
	})
	var data struct {
		Topic   string `json:"topic"`
		Content string `json:"content"`
	}
	decodeEnvelope(t, out, &data)
	if data.Topic != "servers" || !strings.Contains(data.Content, "HPT_API_URL") {
		t.Fatalf("unexpected docs output: %s", out)
	}
}
