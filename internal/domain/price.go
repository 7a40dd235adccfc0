package domain

import (
	"encoding/json"
)

// PriceDigits derives the sortable integer value of a free-text price by
// keeping only its ASCII digits ("68 000 ₽" → 68000). When no digits remain
// the result is 0. Display formatting stays untouched; arithmetic always
// runs on this derived value.
func PriceDigits(price string) int {
	n := 0
	seen := false
	for _, r := range price {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return n
}

// ParseImages decodes the serialized image list of a product. A malformed or
// empty value yields an empty slice rather than an error so one bad row
// cannot fail a whole catalog response.
func ParseImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var imgs []string
	if err := json.Unmarshal([]byte(raw), &imgs); err != nil || imgs == nil {
		return []string{}
	}
	return imgs
}
