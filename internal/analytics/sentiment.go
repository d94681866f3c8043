package analytics

import (
	"sort"

	"playpulse/domain/apps"
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

// AnalyzeSentiment tallies review labels and summarizes polarity and
// subjectivity. Percentages are relative to reviews carrying a recognized
// label. TopReviewedApps keeps the topN apps with the most reviews.
func AnalyzeSentiment(reviews []apps.ReviewRecord, topN int) (result stats.SentimentSummary) {
	defer guard("AnalyzeSentiment", &result, func() stats.SentimentSummary {
		return stats.SentimentSummary{TopReviewedApps: []stats.AppSentiment{}}
	})

	if topN <= 0 {
		topN = DefaultTopN
	}

	counts := countSentiment(reviews)
	polarity := make([]float64, len(reviews))
	subjectivity := make([]float64, len(reviews))
	for i, r := range reviews {
		polarity[i] = r.PolarityValue()
		subjectivity[i] = r.SubjectivityValue()
	}

	named := make([]apps.ReviewRecord, 0, len(reviews))
	for _, r := range reviews {
		if r.App != "" {
			named = append(named, r)
		}
	}
	groups := sample.GroupBy(named, func(r apps.ReviewRecord) string { return r.App })

	perApp := make([]stats.AppSentiment, 0, len(groups))
	for _, g := range groups {
		perApp = append(perApp, summarizeAppSentiment(g.Key, g.Items))
	}
	sort.SliceStable(perApp, func(i, j int) bool {
		return perApp[i].ReviewCount > perApp[j].ReviewCount
	})
	if len(perApp) > topN {
		perApp = perApp[:topN]
	}

	labelled := counts.Positive + counts.Neutral + counts.Negative
	return stats.SentimentSummary{
		TotalReviews:         len(reviews),
		LabelledReviews:      labelled,
		SentimentCounts:      counts,
		SentimentPercentages: sentimentPercentages(counts),
		PolarityStats:        Summarize(polarity),
		SubjectivityStats:    Summarize(subjectivity),
		TopReviewedApps:      perApp,
	}
}

func countSentiment(reviews []apps.ReviewRecord) stats.SentimentCounts {
	var counts stats.SentimentCounts
	for _, r := range reviews {
		switch r.Sentiment {
		case apps.SentimentPositive:
			counts.Positive++
		case apps.SentimentNeutral:
			counts.Neutral++
		case apps.SentimentNegative:
			counts.Negative++
		}
	}
	return counts
}

func sentimentPercentages(counts stats.SentimentCounts) stats.SentimentPercentages {
	labelled := float64(counts.Positive + counts.Neutral + counts.Negative)
	return stats.SentimentPercentages{
		Positive: sample.Percent(float64(counts.Positive), labelled),
		Neutral:  sample.Percent(float64(counts.Neutral), labelled),
		Negative: sample.Percent(float64(counts.Negative), labelled),
	}
}

func summarizeAppSentiment(app string, reviews []apps.ReviewRecord) stats.AppSentiment {
	counts := countSentiment(reviews)
	shares := sentimentPercentages(counts)

	polarity := make([]float64, len(reviews))
	subjectivity := make([]float64, len(reviews))
	for i, r := range reviews {
		polarity[i] = r.PolarityValue()
		subjectivity[i] = r.SubjectivityValue()
	}

	return stats.AppSentiment{
		App:               app,
		ReviewCount:       len(reviews),
		PositiveShare:     shares.Positive,
		NegativeShare:     shares.Negative,
		AvgPolarity:       sample.Mean(sample.Clean(polarity)),
		AvgSubjectivity:   sample.Mean(sample.Clean(subjectivity)),
		DominantSentiment: DominantSentiment(counts),
	}
}

// DominantSentiment returns the most frequent label. Ties resolve in the
// order Positive, Neutral, Negative; no labelled reviews gives SentimentUnknown.
func DominantSentiment(counts stats.SentimentCounts) apps.Sentiment {
	best, bestCount := apps.SentimentUnknown, 0
	for _, c := range []struct {
		label apps.Sentiment
		count int
	}{
		{apps.SentimentPositive, counts.Positive},
		{apps.SentimentNeutral, counts.Neutral},
		{apps.SentimentNegative, counts.Negative},
	} {
		if c.count > bestCount {
			best, bestCount = c.label, c.count
		}
	}
	return best
}
