// SPDX-License-Identifier: MIT
package strutil

import "strings"

// SplitCSV splits a comma separated list, trimming items and dropping empty ones.
func SplitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
