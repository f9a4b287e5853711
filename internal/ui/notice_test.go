package ui

import "testing"

func TestChannelNotifier_DeliversInOrder(t *testing.T) {
	n := NewChannelNotifier()
	n.Success("Added to cart")
	n.Error("Could not update cart")

	first := <-n.Notices()
	if first.Level != NoticeSuccess || first.Text != "Added to cart" {
		t.Fatalf("first notice = %+v", first)
	}
	second := <-n.Notices()
	if second.Level != NoticeError || second.Text != "Could not update cart" {
		t.Fatalf("second notice = %+v", second)
	}
}

func TestChannelNotifier_DropsWhenFull(t *testing.T) {
	n := NewChannelNotifier()
	for i := 0; i < 100; i++ {
		n.Success("notice")
	}
	// The send must not block even though nothing is draining.
	n.Error("overflow")

	if len(n.ch) != cap(n.ch) {
		t.Fatalf("buffered = %d, want full buffer %d", len(n.ch), cap(n.ch))
	}
}
