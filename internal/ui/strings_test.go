package ui

import "testing"

func TestFormatKES(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "KSh 0.00"},
		{50, "KSh 50.00"},
		{1234.5, "KSh 1,234.50"},
		{95000, "KSh 95,000.00"},
		{1234567.89, "KSh 1,234,567.89"},
		{-250, "-KSh 250.00"},
	}

	for _, tt := range tests {
		if got := formatKES(tt.amount); got != tt.want {
			t.Errorf("formatKES(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"shorter than limit", "Pixel", 10, "Pixel"},
		{"exactly limit", "Pixel", 5, "Pixel"},
		{"truncated", "Samsung Galaxy S25 Ultra", 10, "Samsung..."},
		{"tiny limit", "Pixel", 3, "Pix"},
		{"zero limit returns value", "Pixel", 0, "Pixel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.value, tt.limit); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"pending", "Pending"},
		{"payment_failed", "Payment Failed"},
		{"", ""},
		{"SHIPPED", "Shipped"},
	}

	for _, tt := range tests {
		if got := titleCase(tt.value); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestVariationLabel(t *testing.T) {
	if got := variationLabel("null"); got != "" {
		t.Errorf("variationLabel(null) = %q, want empty", got)
	}
	if got := variationLabel(""); got != "" {
		t.Errorf("variationLabel(empty) = %q, want empty", got)
	}
	if got := variationLabel("8GB - 256GB"); got != "8GB - 256GB" {
		t.Errorf("variationLabel = %q, want 8GB - 256GB", got)
	}
}
