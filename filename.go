package recorder

import (
	"fmt"
	"strings"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/openmotorsport"
)

// replaceFirst substitutes only the first occurrence of find, so a
// placeholder that appears twice resolves to two different values.
func replaceFirst(s, find, replacement string) string {
	return strings.Replace(s, find, replacement, 1)
}

// FormatFileName renders an archive filename from a template. Recognised
// placeholders, applied in order: %Y year, %M month, %D day, %H hour,
// %M minute (second occurrence), %c vehicle, %t track, %d driver.
func FormatFileName(format string, session *openmotorsport.Session) string {
	date := session.Date

	format = replaceFirst(format, "%Y", fmt.Sprintf("%d", date.Year()))
	format = replaceFirst(format, "%M", fmt.Sprintf("%02d", int(date.Month())))
	format = replaceFirst(format, "%D", fmt.Sprintf("%02d", date.Day()))
	format = replaceFirst(format, "%H", fmt.Sprintf("%02d", date.Hour()))
	format = replaceFirst(format, "%M", fmt.Sprintf("%02d", date.Minute()))
	format = replaceFirst(format, "%c", session.Vehicle)
	format = replaceFirst(format, "%t", session.Track)
	format = replaceFirst(format, "%d", session.User)

	return format
}
