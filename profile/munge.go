package profile

import (
	"strings"
)

const maxTagLength = 100

// MungeTag normalizes a free keyword into the stored tag form:
// lowercase, alphanumerics plus "-_.", everything else folded to a
// dash, no leading/trailing or repeated dashes, capped at 100 bytes.
func MungeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))

	var b strings.Builder
	lastDash := true
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			if r == '-' {
				if lastDash {
					continue
				}
				lastDash = true
			} else {
				lastDash = false
			}
			b.WriteRune(r)
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxTagLength {
		out = out[:maxTagLength]
	}
	return out
}
