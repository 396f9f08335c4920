// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"math"
	"strconv"
	"strings"
)

// asString coerces a decoded JSON value to a string. Non-scalar values
// and nil coerce to the empty string.
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// asInt coerces a decoded JSON value to an int. Strings parse their
// leading integer digits, anything else coerces to zero.
func asInt(v any) int {
	switch val := v.(type) {
	case float64:
		// int(val) is undefined once val leaves the int64 range.
		if math.IsNaN(val) || math.Abs(val) >= math.MaxInt64 {
			return 0
		}
		return int(val)
	case string:
		s := strings.TrimSpace(val)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// asBool coerces a decoded JSON value to a bool; only a literal true counts.
func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// flagDefaultTrue reads an opt-out boolean: anything but a literal false
// keeps the flag on.
func flagDefaultTrue(v any) bool {
	b, ok := v.(bool)
	return !ok || b
}

// presence returns a pointer to the coerced string when it is non-empty
// after trimming, nil otherwise.
func presence(v any) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	return &s
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
