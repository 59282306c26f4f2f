package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/crewware/roster/internal/store"
)

// Forecast buckets upcoming project demand by calendar week and compares
// each bucket against the available crew count. Weeks with no projects are
// never synthesized. The same supply snapshot is applied to every week;
// crew already committed to earlier weeks is not subtracted from later
// ones. That is a known simplification carried over from the original
// forecasting behavior, kept deliberately.
func Forecast(projects []store.ProjectDemand, availableCrewCount int) []store.WeeklyForecast {
	buckets := make(map[string]*store.WeeklyForecast)
	for _, p := range projects {
		year, week := weekNumber(p.StartDate)
		key := fmt.Sprintf("%d-W%d", year, week)

		b, ok := buckets[key]
		if !ok {
			b = &store.WeeklyForecast{
				Week:          key,
				Year:          year,
				WeekNumber:    week,
				AvailableCrew: availableCrewCount,
			}
			buckets[key] = b
		}

		b.ProjectsCount++
		b.CrewNeeded += p.CrewSize
	}

	forecast := make([]store.WeeklyForecast, 0, len(buckets))
	for _, b := range buckets {
		gap := b.CrewNeeded - availableCrewCount
		if gap < 0 {
			gap = 0
		}
		b.Gap = gap
		forecast = append(forecast, *b)
	}

	sort.Slice(forecast, func(i, j int) bool {
		if forecast[i].Year != forecast[j].Year {
			return forecast[i].Year < forecast[j].Year
		}
		return forecast[i].WeekNumber < forecast[j].WeekNumber
	})
	return forecast
}

// weekNumber computes the Jan-1-anchored week number: day-of-year offset
// by the ISO weekday of January 1st, divided into 7-day buckets. This is
// intentionally not strict ISO-8601 week numbering; it matches the
// numbering persisted by existing forecast reports.
func weekNumber(t time.Time) (year, week int) {
	year = t.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	offset := isoWeekday(jan1)
	week = int(math.Ceil(float64((t.YearDay()-1)+offset) / 7))
	return year, week
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1,
// Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
