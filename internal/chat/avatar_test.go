package chat

import "testing"

func TestAvatarColor_Deterministic(t *testing.T) {
	for _, name := range []string{"alice", "bob", "Carol", "长名字"} {
		first := AvatarColor(name)
		second := AvatarColor(name)
		if first != second {
			t.Errorf("color for %q not stable: %s vs %s", name, first, second)
		}
	}
}

func TestAvatarColor_KnownMapping(t *testing.T) {
	// "a" is 97; 97 % 6 = 1, the second palette entry.
	if got := AvatarColor("a"); got != avatarPalette[1] {
		t.Errorf("expected %s for 'a', got %s", avatarPalette[1], got)
	}
	// "ab" sums to 195; 195 % 6 = 3.
	if got := AvatarColor("ab"); got != avatarPalette[3] {
		t.Errorf("expected %s for 'ab', got %s", avatarPalette[3], got)
	}
}

func TestAvatarColor_InPalette(t *testing.T) {
	for _, name := range []string{"", "x", "someone with a long name"} {
		color := AvatarColor(name)
		found := false
		for _, c := range avatarPalette {
			if c == color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("color %s for %q not in palette", color, name)
		}
	}
}

func TestAvatarInitial(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"alice", "A"},
		{"  bob", "B"},
		{"", "?"},
		{"   ", "?"},
		{"émile", "É"},
	}

	for _, tc := range tests {
		if got := AvatarInitial(tc.name); got != tc.expected {
			t.Errorf("AvatarInitial(%q) = %q, expected %q", tc.name, got, tc.expected)
		}
	}
}
