package newsapi

import (
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	got := parseTime("2025-06-15T08:30:00Z")
	if got == nil {
		t.Fatal("expected a parsed time, got nil")
	}
	want := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseTime() = %v, want %v", got, want)
	}
}

func TestParseTimeUnparseable(t *testing.T) {
	if got := parseTime("not-a-date"); got != nil {
		t.Errorf("unparseable stamp should come back nil, got %v", got)
	}
	if got := parseTime(""); got != nil {
		t.Errorf("empty stamp should come back nil, got %v", got)
	}
}

func TestFetchWithoutKeyIsNoOp(t *testing.T) {
	c := NewClient("", time.Second)
	if items := c.FetchTopHeadlines(); items != nil {
		t.Errorf("keyless client should contribute nothing, got %d items", len(items))
	}
}
