package analytics

import (
	"sort"

	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// DefaultTopN is the number of entries AnalyzeFrequency keeps when the caller
// passes a non-positive limit
const DefaultTopN = 10

// AnalyzeFrequency ranks the distinct values of a categorical sample by count.
// Empty strings are ignored and percentages are relative to the remaining
// values. Ties keep the order in which values were first seen.
func AnalyzeFrequency(values []string, topN int) (result []stats.FrequencyEntry) {
	defer guard("AnalyzeFrequency", &result, func() []stats.FrequencyEntry { return []stats.FrequencyEntry{} })

	if topN <= 0 {
		topN = DefaultTopN
	}

	clean := sample.CleanStrings(values)
	if len(clean) == 0 {
		return []stats.FrequencyEntry{}
	}
	total := float64(len(clean))

	groups := sample.GroupBy(clean, func(v string) string { return v })
	entries := make([]stats.FrequencyEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, stats.FrequencyEntry{
			Value:      g.Key,
			Count:      len(g.Items),
			Percentage: sample.Percent(float64(len(g.Items)), total),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
