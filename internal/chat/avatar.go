package chat

import "strings"

// avatarPalette holds the six avatar background colors assigned to
// sender names. The assignment is deterministic so a sender keeps the
// same color across sessions and clients.
var avatarPalette = []string{
	"#A855F7", // purple
	"#F97316", // orange
	"#22C55E", // green
	"#3B82F6", // blue
	"#EAB308", // yellow
	"#6366F1", // indigo
}

// AvatarColor returns the avatar color for a sender name. The color is
// picked by summing the character codes of the name modulo the palette
// size, so equal names always map to equal colors.
func AvatarColor(name string) string {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return avatarPalette[sum%len(avatarPalette)]
}

// AvatarInitial returns the single uppercase character shown inside the
// avatar circle, or "?" for an empty name.
func AvatarInitial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(trimmed)[0]))
}
