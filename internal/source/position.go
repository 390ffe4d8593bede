package source

import "strings"

// LineOf returns the 1-based line that contains the given byte offset:
// one plus the number of '\n' characters in src[:offset]. Offsets past the
// end of src count the newlines of the whole string.
func LineOf(src string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	return 1 + strings.Count(src[:offset], "\n")
}
