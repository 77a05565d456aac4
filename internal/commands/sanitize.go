package commands

import (
	"regexp"
	"strings"
)

// common ANSI CSI sequences like \x1b[31m
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", "", "\n", " ")

// sanitizeOutput flattens s onto one line and drops ANSI escapes, so a stored
// expression cannot repaint the terminal when history is printed.
func sanitizeOutput(s string) string {
	s = lineBreaks.Replace(s)
	return ansiRe.ReplaceAllString(s, "")
}
