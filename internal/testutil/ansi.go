// Package testutil holds helpers shared by tests of the terminal front ends.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences such as color codes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes terminal escape sequences so that tests can assert
// on the visible text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
