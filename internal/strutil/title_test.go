package strutil

import "testing"

func TestTitleFromEnum(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CLIENT", "Client"},
		{"CLIENT_LABEL", "Client Label"},
		{"FILE_STORE", "File Store"},
		{"SERVER", "Server"},
		{"", ""},
		{"__ODD__TOKEN_", "Odd Token"},
		{"already_lower", "Already Lower"},
	}

	for _, tt := range tests {
		if got := TitleFromEnum(tt.in); got != tt.want {
			t.Errorf("TitleFromEnum(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
