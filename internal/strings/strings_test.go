package strings

import "testing"

func TestPrompt(t *testing.T) {
	tests := []struct {
		user, dir, want string
	}{
		{"user", "/home/user", "user@terminal:~$"},
		{"user", "/home/user/projects", "user@terminal:projects$"},
		{"demo", "/var/log", "demo@terminal:log$"},
		{"user", "/", "user@terminal:/$"},
		{"user", "", "user@terminal:/$"},
	}
	for _, tt := range tests {
		if got := Prompt(tt.user, tt.dir); got != tt.want {
			t.Errorf("Prompt(%q, %q) = %q, want %q", tt.user, tt.dir, got, tt.want)
		}
	}
}

func TestShortPath(t *testing.T) {
	tests := []struct {
		dir, want string
	}{
		{"/home/user", "~"},
		{"/home/user/projects", "projects"},
		{"/tmp", "tmp"},
		{"/var/log/", "log"},
		{"/", "/"},
		{"", "/"},
	}
	for _, tt := range tests {
		if got := ShortPath(tt.dir); got != tt.want {
			t.Errorf("ShortPath(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hi", 8); got != "hi" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestWordWrap(t *testing.T) {
	got := WordWrap("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("WordWrap = %q, want %q", got, want)
	}
}

func TestWordWrapPreservesNewlines(t *testing.T) {
	got := WordWrap("a\n\nb", 10)
	if got != "a\n\nb" {
		t.Errorf("WordWrap = %q", got)
	}
}
