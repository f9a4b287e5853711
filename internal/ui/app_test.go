package ui

import "testing"

func TestNew_PrefillsRememberedEmail(t *testing.T) {
	m := New(Options{LastEmail: "amina@example.com"})
	if got := m.auth.email.Value(); got != "amina@example.com" {
		t.Fatalf("email prefill = %q, want remembered address", got)
	}
	if got := m.auth.password.Value(); got != "" {
		t.Fatalf("password = %q, want empty", got)
	}
}

func TestNew_NoRememberedEmailLeavesFormEmpty(t *testing.T) {
	m := New(Options{})
	if got := m.auth.email.Value(); got != "" {
		t.Fatalf("email = %q, want empty", got)
	}
}

func TestNextView_CyclesThroughStorefrontViews(t *testing.T) {
	order := []View{ViewCatalog, ViewCart, ViewCompare, ViewWishlist, ViewOrders}
	for i, v := range order {
		want := order[(i+1)%len(order)]
		if got := nextView(v); got != want {
			t.Errorf("nextView(%d) = %d, want %d", v, got, want)
		}
	}
}
