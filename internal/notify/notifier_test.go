package notify

import (
	"errors"
	"testing"
)

type fakeChannel struct {
	configured bool
	err        error
	calls      int
	lastTitle  string
}

func (f *fakeChannel) Configured() bool { return f.configured }

func (f *fakeChannel) Send(title, content string) error {
	f.calls++
	f.lastTitle = title
	return f.err
}

func TestSendUsesPrimaryWhenItSucceeds(t *testing.T) {
	primary := &fakeChannel{configured: true}
	secondary := &fakeChannel{configured: true}
	n := NewNotifierWithChannels(primary, secondary)

	if err := n.Send("digest", "body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("primary should have been called once, got %d", primary.calls)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary should not be touched on primary success, got %d calls", secondary.calls)
	}
}

func TestSendFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeChannel{configured: true, err: errors.New("http 500")}
	secondary := &fakeChannel{configured: true}
	n := NewNotifierWithChannels(primary, secondary)

	if err := n.Send("digest", "body"); err != nil {
		t.Fatalf("fallback should have rescued the send: %v", err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("expected one call each, got primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestSendSkipsUnconfiguredPrimary(t *testing.T) {
	primary := &fakeChannel{configured: false}
	secondary := &fakeChannel{configured: true}
	n := NewNotifierWithChannels(primary, secondary)

	if err := n.Send("digest", "body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.calls != 0 {
		t.Error("unconfigured primary should never be called")
	}
	if secondary.calls != 1 {
		t.Errorf("secondary should carry the send, got %d calls", secondary.calls)
	}
}

func TestSendFailsWhenAllChannelsFail(t *testing.T) {
	primary := &fakeChannel{configured: true, err: errors.New("primary down")}
	secondary := &fakeChannel{configured: true, err: errors.New("secondary down")}
	n := NewNotifierWithChannels(primary, secondary)

	if err := n.Send("digest", "body"); err == nil {
		t.Fatal("expected an error when every channel fails")
	}
	// Exactly one attempt per channel, no retries.
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("expected single attempts, got primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestTestConnectionWithoutChannels(t *testing.T) {
	n := NewNotifierWithChannels(&fakeChannel{}, &fakeChannel{})
	if err := n.TestConnection(); err == nil {
		t.Fatal("expected an error with no channel configured")
	}
	if n.Configured() {
		t.Error("Configured should report false with no usable channel")
	}
}
