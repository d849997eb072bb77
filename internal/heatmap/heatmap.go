package heatmap

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"wsd/internal/models"
)

// DefaultWindowDays is the fixed width of the contribution grid.
const DefaultWindowDays = 365

// ColorBucket maps a day's view count to its color bucket: 0 means no
// activity, 4 is the brightest. The mapping is absolute, not scaled to the
// maximum count.
func ColorBucket(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	case count == 3:
		return 3
	default:
		return 4
	}
}

// ActiveDayBitmap collects the day ordinals with a positive count.
func ActiveDayBitmap(data map[string]int) *roaring.Bitmap {
	active := roaring.New()
	for key, count := range data {
		if count <= 0 {
			continue
		}
		if ord, ok := models.DayOrdinal(key); ok {
			active.Add(ord)
		}
	}
	return active
}

// CurrentStreak counts consecutive active days ending at today, walking
// backward. A zero-count today means a zero streak.
func CurrentStreak(data map[string]int, today time.Time) int {
	active := ActiveDayBitmap(data)
	streak := 0
	ord := models.OrdinalOf(today)
	for active.Contains(ord) {
		streak++
		if ord == 0 {
			break
		}
		ord--
	}
	return streak
}

// TotalActiveDays counts the days with at least one recorded view.
func TotalActiveDays(data map[string]int) int {
	return int(ActiveDayBitmap(data).GetCardinality())
}

type Cell struct {
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Bucket  int    `json:"bucket"`
	InRange bool   `json:"inRange"`
}

type Grid struct {
	Weeks           [][]Cell `json:"weeks"`
	CurrentStreak   int      `json:"currentStreak"`
	TotalActiveDays int      `json:"totalActiveDays"`
	TotalXP         int      `json:"totalXP"`
}

// Build renders the fixed windowDays-wide grid, 7 rows per week column with
// the most recent day at the trailing edge. Leading and trailing cells that
// pad the first and last week fall outside the window and stay blank.
func Build(data map[string]int, today time.Time, windowDays int) *Grid {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	start := today.AddDate(0, 0, -(windowDays - 1))
	startDow := int(start.Weekday())
	weeks := (startDow + windowDays + 6) / 7

	grid := make([][]Cell, weeks)
	for w := 0; w < weeks; w++ {
		week := make([]Cell, 7)
		for day := 0; day < 7; day++ {
			dayIndex := w*7 + day - startDow
			if dayIndex < 0 || dayIndex >= windowDays {
				continue
			}
			key := models.DayKey(start.AddDate(0, 0, dayIndex))
			count := data[key]
			if count < 0 {
				count = 0
			}
			week[day] = Cell{
				Key:     key,
				Count:   count,
				Bucket:  ColorBucket(count),
				InRange: true,
			}
		}
		grid[w] = week
	}

	return &Grid{
		Weeks:           grid,
		CurrentStreak:   CurrentStreak(data, today),
		TotalActiveDays: TotalActiveDays(data),
		TotalXP:         models.TotalXPOf(data),
	}
}
