package utils

import (
	"errors"
	"regexp"
	"strconv"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

var trailingDigits = regexp.MustCompile(`(\d+)\D*$`)

var ErrNoID = errors.New("no numeric id found")

// ExtractTrailingID pulls the last run of digits out of a reference that
// may be a bare id ("42") or a URL ("https://example.com/post/42").
func ExtractTrailingID(ref string) (uint, error) {
	match := trailingDigits.FindStringSubmatch(ref)
	if match == nil {
		return 0, ErrNoID
	}
	id, err := strconv.ParseUint(match[1], 10, 32)
	if err != nil {
		return 0, ErrNoID
	}
	return uint(id), nil
}
