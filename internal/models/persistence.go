package models

import "github.com/spf13/cast"

// LedgerFile is the persisted envelope for the activity ledger.
// ActivityDates is the legacy format: one entry per recorded view, possibly
// with duplicate day keys. It is only ever read, folded into ActivityMap and
// then written back empty.
type LedgerFile struct {
	ActivityMap   map[string]int `json:"activityMap"`
	TotalXP       int            `json:"totalXP"`
	ActivityDates []string       `json:"activityDates,omitempty"`
}

// LooseLedgerFile tolerates the loosely-typed values older files may carry.
// Counts are coerced with cast; anything non-numeric or non-positive is
// dropped rather than trusted.
type LooseLedgerFile struct {
	ActivityMap   map[string]any `json:"activityMap"`
	TotalXP       any            `json:"totalXP"`
	ActivityDates []string       `json:"activityDates"`
}

// SanitizeCounts coerces a loosely-typed activity map into day key -> count,
// dropping malformed keys and non-positive counts.
func SanitizeCounts(raw map[string]any) map[string]int {
	counts := make(map[string]int, len(raw))
	for key, v := range raw {
		if _, ok := DayOrdinal(key); !ok {
			continue
		}
		count := cast.ToInt(v)
		if count <= 0 {
			continue
		}
		counts[key] = count
	}
	return counts
}

// FoldLegacyDates collapses the legacy date list into a count map,
// one view per occurrence.
func FoldLegacyDates(dates []string) map[string]int {
	counts := make(map[string]int)
	for _, key := range dates {
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}
