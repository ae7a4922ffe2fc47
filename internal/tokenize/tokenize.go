// Package tokenize splits element text into typed numeric tokens.
//
// Every function fails fast: the first token that does not parse aborts the
// whole sequence, so callers never see a partially converted slice.
package tokenize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotFinite is returned for NaN or infinite float tokens.
var ErrNotFinite = errors.New("not a finite real number")

// ErrNotDecimal is returned for hexadecimal float tokens such as 0x1p1.
var ErrNotDecimal = errors.New("not a decimal number")

// ParseIntStrict parses a single base-10 integer token (an optional sign is accepted).
func ParseIntStrict(token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("token %q is not an integer: %w", token, err)
	}
	return v, nil
}

// ParseFloatStrict parses a single finite real number token.
func ParseFloatStrict(token string) (float64, error) {
	digits := strings.TrimLeft(token, "+-")
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, fmt.Errorf("token %q: %w", token, ErrNotDecimal)
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("token %q is not a real number: %w", token, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("token %q: %w", token, ErrNotFinite)
	}
	return v, nil
}

// Ints splits text on whitespace and parses every token as an integer.
func Ints(text string) ([]int, error) {
	fields := strings.Fields(text)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := ParseIntStrict(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Floats splits text on whitespace and parses every token as a finite real number.
func Floats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseFloatStrict(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// JoinInts renders values separated by a single space.
func JoinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
