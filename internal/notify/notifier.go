package notify

import (
	"fmt"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
)

// Channel is one push destination. Both ServerChan and WorkWeChat satisfy
// it through small adapters below; WorkWeChat has no title concept, so the
// title is folded into the content by the adapter.
type Channel interface {
	Configured() bool
	Send(title, content string) error
}

type serverChanChannel struct{ *ServerChan }

type workWeChatChannel struct{ *WorkWeChat }

func (w workWeChatChannel) Send(title, content string) error {
	return w.WorkWeChat.Send(content)
}

// Notifier sends a message to exactly one channel: the primary, or the
// secondary when the primary is unconfigured or fails. No retries.
type Notifier struct {
	primary   Channel
	secondary Channel
}

func NewNotifier(sc *ServerChan, ww *WorkWeChat) *Notifier {
	return &Notifier{
		primary:   serverChanChannel{sc},
		secondary: workWeChatChannel{ww},
	}
}

// NewNotifierWithChannels wires arbitrary channels; used by tests.
func NewNotifierWithChannels(primary, secondary Channel) *Notifier {
	return &Notifier{primary: primary, secondary: secondary}
}

// Send delivers title+content. A failure on every configured channel is
// reported but the caller treats it as non-fatal.
func (n *Notifier) Send(title, content string) error {
	if n.primary.Configured() {
		err := n.primary.Send(title, content)
		if err == nil {
			metrics.Global.IncrementNotificationsSent()
			return nil
		}
		logger.Warn("primary channel failed, trying fallback", "error", err)
	}

	if n.secondary.Configured() {
		err := n.secondary.Send(title, content)
		if err == nil {
			metrics.Global.IncrementNotificationsSent()
			return nil
		}
		logger.Error("fallback channel failed", "error", err)
	}

	metrics.Global.IncrementNotificationsFailed()
	return fmt.Errorf("notification failed on all configured channels")
}

// Configured reports whether at least one channel can be used.
func (n *Notifier) Configured() bool {
	return n.primary.Configured() || n.secondary.Configured()
}

// TestConnection sends a small probe message. Having no channel configured
// at all is the one unrecoverable configuration error in the system.
func (n *Notifier) TestConnection() error {
	if !n.Configured() {
		return fmt.Errorf("no notification channel configured")
	}
	content := fmt.Sprintf("Test message from the news collector. If you can read this, the channel works.\n\nSent at: %s",
		time.Now().Format(time.RFC3339))
	return n.Send("News collector test", content)
}
