package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanHTMLStripsMarkup(t *testing.T) {
	in := `<p>The Fed <strong>raised</strong> rates.</p><img src="x.png">`
	got := CleanHTML(in)
	if got != "The Fed raised rates." {
		t.Errorf("CleanHTML() = %q", got)
	}
}

func TestCleanHTMLPlainTextPassthrough(t *testing.T) {
	in := "  plain text, no markup  "
	if got := CleanHTML(in); got != "plain text, no markup" {
		t.Errorf("CleanHTML() = %q", got)
	}
}

func TestCleanHTMLCollapsesWhitespace(t *testing.T) {
	in := "<div>line one\n\n   line two</div>"
	if got := CleanHTML(in); got != "line one line two" {
		t.Errorf("CleanHTML() = %q", got)
	}
}

func TestLoadSources(t *testing.T) {
	content := `feeds:
  - https://example.com/rss
  - https://example.org/feed.xml
keywords:
  markets:
    - stock
    - fed
  ai_robotics:
    - robot
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSources(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Feeds) != 2 {
		t.Errorf("expected 2 feeds, got %d", len(cfg.Feeds))
	}
	if len(cfg.Keywords.Markets) != 2 || cfg.Keywords.Markets[1] != "fed" {
		t.Errorf("markets keywords wrong: %v", cfg.Keywords.Markets)
	}
	if len(cfg.Keywords.AIRobotics) != 1 {
		t.Errorf("ai keywords wrong: %v", cfg.Keywords.AIRobotics)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing sources file")
	}
}
