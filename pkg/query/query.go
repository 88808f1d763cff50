// Copyright (c) 2026 marsAI. All rights reserved.

// Package query parses list-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Values merges repeated parameters (?c=FR&c=US) and comma lists (?c=FR,US).
func Values(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}
