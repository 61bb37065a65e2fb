package icons

const (
	IconChat   = "󰭹"
	IconSimple = "󰘦"
	IconSaved  = "󰆓"

	// Utility Icons
	IconSuccess = "✓"
	IconSelect  = "▸"
	IconBullet  = "•"
)

// ModeIcon returns the glyph for a display mode name
func ModeIcon(mode string) string {
	switch mode {
	case "chat":
		return IconChat
	case "simple":
		return IconSimple
	default:
		return IconBullet
	}
}
