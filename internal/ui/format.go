package ui

import (
	"slices"

	"timebox/internal/task"
)

// sortedDates returns the mapping's date keys in ascending order. The keys
// are ISO dates, so lexical order is chronological order.
func sortedDates(days map[string][]*task.Task) []string {
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}
