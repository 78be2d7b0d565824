package util

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// ParseBrandID parses a brand query value. "", "all" and "0" select every brand.
func ParseBrandID(raw string) (uint64, error) {
	v := strings.TrimSpace(strings.ToLower(raw))
	if v == "" || v == "all" {
		return 0, nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// FormatBrandID inverse of ParseBrandID
func FormatBrandID(id uint64) string {
	if id == 0 {
		return "all"
	}
	return strconv.FormatUint(id, 10)
}

// StrSliceToUInt64Slice converts ids, skipping blanks
func StrSliceToUInt64Slice(in []string) ([]uint64, error) {
	out := make([]uint64, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
