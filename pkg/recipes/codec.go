package recipes

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidValue is returned by DecodeQuery for a value that does not fit
// its key.
var ErrInvalidValue = errors.New("invalid parameter value")

// DecodeQuery parses query-form values back into params. Unrecognized keys
// are ignored and empty values skipped.
//
// Ranges are read from "min-max". For calories and time a single number, or
// a number followed by "+", stays a Scalar. random accepts strconv.ParseBool
// input.
func DecodeQuery(q url.Values) (*Params, error) {
	var entries []Entry
	for _, key := range paramKeys {
		raw := nonEmpty(q[string(key)])
		if len(raw) == 0 {
			continue
		}
		e, err := decodeEntry(key, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return NewParams(entries...), nil
}

// ParseQuery is DecodeQuery over a raw query string, with or without a
// leading "?".
func ParseQuery(raw string) (*Params, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	return DecodeQuery(q)
}

func decodeEntry(key ParamKey, raw []string) (Entry, error) {
	switch key {
	case KeyCalories, KeyTime:
		if len(raw) > 1 {
			return Entry{}, fmt.Errorf("%s: %w: want one value, got %d", key, ErrInvalidValue, len(raw))
		}
		v, err := parseAmount(raw[0])
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", key, err)
		}
		return Entry{key: key, value: v}, nil
	case KeyRandom:
		b, err := strconv.ParseBool(raw[len(raw)-1])
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w: %q", key, ErrInvalidValue, raw[len(raw)-1])
		}
		return Entry{key: key, value: Flag(b)}, nil
	default:
		return choice(key, raw), nil
	}
}

// parseAmount reads "min-max", "n" or "n+". The separator is the first "-"
// after a possible leading sign, so "-10-5" is the range -10 to 5.
func parseAmount(s string) (Value, error) {
	start := min(1, len(s))
	if i := strings.Index(s[start:], "-"); i >= 0 {
		lo, hi := s[:start+i], s[start+i+1:]
		from, err1 := strconv.Atoi(lo)
		to, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: range %q", ErrInvalidValue, s)
		}
		return Range{Min: from, Max: to}, nil
	}
	if _, err := strconv.Atoi(strings.TrimSuffix(s, "+")); err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidValue, s)
	}
	return Scalar(s), nil
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
