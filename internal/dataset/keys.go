package dataset

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeKey canonicalizes a join key so numeric-looking identifiers
// compare equal across tables: "007", "7" and "7.0" all normalize to
// "7". Non-numeric keys are only trimmed. An empty result means the key
// is absent and never joins.
func NormalizeKey(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ""
	}
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	f, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return key
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
