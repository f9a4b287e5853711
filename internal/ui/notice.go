package ui

import "time"

// noticeTTL is how long a notice stays on the status bar.
const noticeTTL = 4 * time.Second

// NoticeLevel classifies a status bar notice.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is a transient user-facing message from a store mutation.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// ChannelNotifier bridges store notices into the Bubble Tea event loop. The
// stores call Success and Error from command goroutines; the model drains
// Notices via waitNoticeCmd.
type ChannelNotifier struct {
	ch chan Notice
}

// NewChannelNotifier builds a notifier with a small buffer so bursts of
// notices never block a store mutation.
func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan Notice, 16)}
}

// Success implements store.Notifier.
func (n *ChannelNotifier) Success(msg string) {
	n.send(Notice{Level: NoticeSuccess, Text: msg})
}

// Error implements store.Notifier.
func (n *ChannelNotifier) Error(msg string) {
	n.send(Notice{Level: NoticeError, Text: msg})
}

// Notices returns the receive side for the UI.
func (n *ChannelNotifier) Notices() <-chan Notice {
	return n.ch
}

func (n *ChannelNotifier) send(notice Notice) {
	select {
	case n.ch <- notice:
	default:
		// Drop rather than block when the UI is not draining.
	}
}
