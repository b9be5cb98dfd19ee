package model

import "strings"

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
