package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "vocab_data.json")
	combined := `[{"lemma":"abandon","count":1,"pos_dist":{"VERB":1},` +
		`"meanings":[{"pos":"VERB","zh_def":"放棄","en_def":"give up"}],` +
		`"sentences":{"featured":[],"other":[]}}]`
	if err := os.WriteFile(input, []byte(combined), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"split", "--input", input, "--output", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v\n%s", err, out.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "vocab_details", "abandon.json")); err != nil {
		t.Errorf("detail file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "vocab_index.json")); err != nil {
		t.Errorf("index file: %v", err)
	}
	if !strings.Contains(out.String(), "detail files") {
		t.Errorf("output = %s", out.String())
	}
}

func TestRenderTable(t *testing.T) {
	got := renderTable(
		[]string{"Result", "Files"},
		[][]string{{"uploaded", "42"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if !strings.Contains(got, "uploaded") || !strings.Contains(got, "42") {
		t.Errorf("table = %s", got)
	}

	if renderTable(nil, nil, nil) != "" {
		t.Error("empty headers should render nothing")
	}
}
