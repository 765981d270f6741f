package models

import "strings"

func trim(s string) string { return strings.TrimSpace(s) }

// compact trims every element and drops the empty ones.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
