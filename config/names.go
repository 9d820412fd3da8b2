package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters which are not allowed in file names on
// current platform. Leading dots and spaces are dropped so result never turns
// into hidden or relative name.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedNameChars, sym) {
			return -1
		}
		return sym
	}, in), ". ")
	if len(out) == 0 {
		out = badFileName
	}
	return out
}

// colorAllowed honors https://no-color.org convention.
func colorAllowed() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}
