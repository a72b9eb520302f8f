// Package dashboard provides pure projections over a user's stored interview
// history. Nothing here touches the store; callers hand in already-fetched
// records and get filtered or reordered copies back.
package dashboard

import (
	"math"
	"sort"

	"github.com/mockmate/interview-cli/internal/model"
)

// RoleAll is the filter value that passes every record.
const RoleAll = "All"

// SortKey selects the dashboard ordering.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByReadiness SortKey = "readiness"
)

// FilterByRole returns the records whose role matches exactly, preserving
// original relative order. RoleAll passes everything.
func FilterByRole(records []model.InterviewRecord, role string) []model.InterviewRecord {
	if role == RoleAll {
		return append([]model.InterviewRecord(nil), records...)
	}
	out := []model.InterviewRecord{}
	for _, r := range records {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy ordered by the given key, descending. The sort is
// stable: ties keep their original relative order. An unknown key falls back
// to date ordering.
func Sort(records []model.InterviewRecord, key SortKey) []model.InterviewRecord {
	out := append([]model.InterviewRecord(nil), records...)
	switch key {
	case SortByReadiness:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Readiness > out[j].Readiness
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.After(out[j].Date)
		})
	}
	return out
}

// Roles returns the distinct role values present, in first-seen order.
func Roles(records []model.InterviewRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := []string{}
	for _, r := range records {
		if _, ok := seen[r.Role]; ok {
			continue
		}
		seen[r.Role] = struct{}{}
		out = append(out, r.Role)
	}
	return out
}

// AverageReadiness returns the integer-rounded mean readiness across the
// records. An empty list yields 0.
func AverageReadiness(records []model.InterviewRecord) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Readiness
	}
	return int(math.Round(float64(sum) / float64(len(records))))
}

// View applies the role filter and sort in one step.
func View(records []model.InterviewRecord, role string, key SortKey) []model.InterviewRecord {
	return Sort(FilterByRole(records, role), key)
}
