package util

import "regexp"

// formatting codes look like "§a", "§l", "§r".
var formattingCode = regexp.MustCompile(`§.`)

// StripFormatting removes Minecraft section-sign formatting codes.
func StripFormatting(s string) string {
	return formattingCode.ReplaceAllString(s, "")
}

// MaskSecret hides all but the first and last 4 characters of a secret.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
