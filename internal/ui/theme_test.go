package ui

import "testing"

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("NoSuchTheme")
	if theme.Name != "Nightfox" {
		t.Fatalf("Name = %q, want Nightfox fallback", theme.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	current := ThemeNames()[0]
	for range ThemeNames() {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != ThemeNames()[0] {
		t.Fatalf("cycle did not wrap, ended at %q", current)
	}
	for _, name := range ThemeNames() {
		if !seen[name] {
			t.Errorf("theme %q never reached in cycle", name)
		}
	}
}

func TestNextTheme_UnknownStartsAtFirst(t *testing.T) {
	if got := NextTheme("NoSuchTheme"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme = %q, want %q", got, ThemeNames()[0])
	}
}

func TestStatusStyle_KnownAndFallback(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()

	known := styles.StatusStyle("failed")
	fallback := styles.StatusStyle("nonsense")
	if known.GetBackground() == fallback.GetBackground() {
		t.Fatalf("failed status should not use the fallback color")
	}
}
