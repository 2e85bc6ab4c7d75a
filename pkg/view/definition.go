package view

import (
	"strings"
)

// trailingCutset is removed from the end of a definition: whitespace and
// statement separators, in any mix and amount.
const trailingCutset = " \t\r\n\f\v;"

// Normalize canonicalizes definition text so stored and supplied
// definitions compare and store consistently. Leading whitespace and
// trailing whitespace/semicolons are removed; anything inside the text,
// including internal statement separators, is kept as is.
func Normalize(definition string) string {
	res := strings.TrimLeft(definition, " \t\r\n\f\v")
	return strings.TrimRight(res, trailingCutset)
}
