package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  The   Matrix  ", "The Matrix"},
		{"\tHall\nA\t", "Hall A"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTrimAndNormalizeIdempotent(t *testing.T) {
	input := "  a   b  c "
	once := TrimAndNormalize(input)
	if twice := TrimAndNormalize(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
}

func TestNormalizeProductKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"combo a", "COMBO_A"},
		{"COMBO_A", "COMBO_A"},
		{"  soda   large ", "SODA_LARGE"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeProductKey(tt.input); got != tt.want {
			t.Errorf("NormalizeProductKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID(" Sala A "); got != "SalaA" {
		t.Errorf("NormalizeID = %q, want SalaA", got)
	}
}
