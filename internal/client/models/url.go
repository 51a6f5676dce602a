package models

import "strings"

// URLSeparator terminates each entry in the server's photo URL lists.
const URLSeparator = ";"

// NormalizeURL strips trailing separators. NormalizeURL(NormalizeURL(s)) ==
// NormalizeURL(s) for every s.
func NormalizeURL(s string) string {
	return strings.TrimRight(s, URLSeparator)
}

// SplitURLs returns the individual URLs of a separator-joined list.
func SplitURLs(s string) []string {
	var out []string
	for _, u := range strings.Split(NormalizeURL(s), URLSeparator) {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
