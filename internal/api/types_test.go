package api

import "testing"

func TestVariationKey(t *testing.T) {
	tests := []struct {
		name      string
		variation *Variation
		want      string
	}{
		{"nil variation", nil, NoVariationKey},
		{"ram and storage", &Variation{RAM: "8GB", Storage: "128GB"}, "8GB - 128GB"},
		{"whitespace trimmed", &Variation{RAM: " 8GB ", Storage: " 256GB "}, "8GB - 256GB"},
		{"empty fields", &Variation{}, NoVariationKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.variation.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}
