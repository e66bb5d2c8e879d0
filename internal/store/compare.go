package store

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

type filter struct {
	column string
	value  any
}

type ordering struct {
	column    string
	ascending bool
}

// newRowID returns the store-local numeric id stamped onto inserted rows.
// Plain random integers, not the sortable entity identifiers; those are
// reserved for domain-prefixed ids assigned by callers.
func newRowID() int64 {
	return rand.Int63n(1_000_000_000_000) + 1
}

// equalValues implements the equality-filter comparison. Numbers compare
// numerically regardless of their Go type since seed data and callers stamp
// int, int64 and float64 interchangeably.
func equalValues(a, b any) bool {
	if af, ok := asFloat(a); ok {
		bf, okB := asFloat(b)
		return okB && af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, okB := b.(time.Time)
		return okB && at.Equal(bt)
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// sortRows orders rows by one column: strings lexicographically, numbers
// numerically, timestamps chronologically. The sort is stable so ties keep
// their insertion order.
func sortRows(rows []Row, order *ordering) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(rows[i][order.column], rows[j][order.column])
		if order.ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

func compareValues(a, b any) int {
	if af, ok := asFloat(a); ok {
		if bf, okB := asFloat(b); okB {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, okB := b.(string); okB {
			return strings.Compare(as, bs)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, okB := b.(time.Time); okB {
			return at.Compare(bt)
		}
	}
	// Incomparable or missing values keep insertion order.
	return 0
}
