package market

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testData() *Data {
	return &Data{
		Date: "2025-06-15",
		Indices: []Mover{
			{Name: "S&P 500", Symbol: "^GSPC", Price: 5400.12, ChangePct: 0.8},
			{Name: "VIX", Symbol: "^VIX", Price: 13.5, ChangePct: -2.1},
		},
		Sectors: []Mover{
			{Name: "Technology", Symbol: "XLK", ChangePct: 1.4},
			{Name: "Energy", Symbol: "XLE", ChangePct: -0.9},
			{Name: "Financials", Symbol: "XLF", ChangePct: 0.3},
			{Name: "Utilities", Symbol: "XLU", ChangePct: -0.2},
		},
		Gainers: []Mover{{Name: "NVIDIA", Symbol: "NVDA", Price: 131.2, ChangePct: 3.2}},
		Losers:  []Mover{{Name: "Tesla", Symbol: "TSLA", Price: 182.4, ChangePct: -2.5}},
	}
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func TestSimpleSummaryLayout(t *testing.T) {
	got := simpleSummary(testData())

	if !strings.Contains(got, "US Market Overview 2025-06-15") {
		t.Error("summary should carry the snapshot date")
	}
	if !strings.Contains(got, "🟢 **S&P 500**: 5400.12 (+0.80%)") {
		t.Errorf("positive index line missing or wrong:\n%s", got)
	}
	if !strings.Contains(got, "🔴 **VIX**: 13.50 (-2.10%)") {
		t.Errorf("negative index line missing or wrong:\n%s", got)
	}
	if !strings.Contains(got, "NVIDIA (NVDA)") || !strings.Contains(got, "Tesla (TSLA)") {
		t.Error("notable moves missing")
	}

	// Sectors render best-first.
	tech := strings.Index(got, "Technology")
	energy := strings.Index(got, "Energy")
	if tech < 0 || energy < 0 || tech > energy {
		t.Error("sectors should render best-first")
	}
}

func TestAnalysisUsesGenerator(t *testing.T) {
	a := NewAnalyzer(&fakeGenerator{text: "generated commentary"})
	got := a.Analysis(context.Background(), testData())
	if got != "generated commentary" {
		t.Errorf("expected generator output, got %q", got)
	}
}

func TestAnalysisFallsBackOnGeneratorError(t *testing.T) {
	a := NewAnalyzer(&fakeGenerator{err: errors.New("backend down")})
	got := a.Analysis(context.Background(), testData())
	if !strings.Contains(got, "US Market Overview") {
		t.Errorf("expected the deterministic summary as fallback, got %q", got)
	}
}

func TestAnalysisWithoutGenerator(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.Analysis(context.Background(), testData())
	if !strings.Contains(got, "Major indices") {
		t.Errorf("nil generator should produce the deterministic summary, got %q", got)
	}
}

func TestFormatDataSections(t *testing.T) {
	got := formatData(testData())
	for _, section := range []string{"[Indices]", "[Sectors]", "[Top gainers]", "[Top losers]"} {
		if !strings.Contains(got, section) {
			t.Errorf("formatted data missing %s section", section)
		}
	}
}

func TestSortedByChangeDoesNotMutateInput(t *testing.T) {
	in := []Mover{{Name: "a", ChangePct: -1}, {Name: "b", ChangePct: 2}}
	out := sortedByChange(in)
	if out[0].Name != "b" {
		t.Errorf("expected best-first order, got %v", out)
	}
	if in[0].Name != "a" {
		t.Error("input slice must not be reordered")
	}
}
