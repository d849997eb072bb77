package models

import (
	"bytes"
	"fmt"
	"testing"
)

func benchLedgerData(n int) map[string]int {
	data := make(map[string]int, n)
	base, _ := DayOrdinal("2020-01-01")
	for i := 0; i < n; i++ {
		count := 1
		if i%7 == 0 {
			count = 3
		}
		data[KeyOfOrdinal(base+uint32(i))] = count
	}
	return data
}

// BenchmarkBinarySnapshot measures the bitmap snapshot writer with various
// ledger sizes.
func BenchmarkBinarySnapshot(b *testing.B) {
	for _, n := range []int{30, 365, 3650} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			data := benchLedgerData(n)
			var buf bytes.Buffer

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				_ = writeLedgerSnapshot(&buf, data)
			}
		})
	}
}

func BenchmarkTotalXPOf(b *testing.B) {
	data := benchLedgerData(365)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = TotalXPOf(data)
	}
}
