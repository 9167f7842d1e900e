package analytics

import (
	"sort"

	"github.com/ferateo/bizbot/internal/models"
)

// topCategoryLimit caps the category histogram in a summary.
const topCategoryLimit = 5

// Summarize aggregates an immutable snapshot of interactions into query
// counts, the top categories and the average sentiment. An empty snapshot
// yields a zero summary, not an error.
func Summarize(interactions []*models.ChatInteraction) models.ChatAnalysis {
	analysis := models.ChatAnalysis{
		TopCategories: []models.CategoryCount{},
	}
	analysis.TotalQueries = len(interactions)
	if analysis.TotalQueries == 0 {
		return analysis
	}

	counts := make(map[string]int)
	var order []string
	var sentimentTotal float64

	for _, interaction := range interactions {
		category := interaction.Category
		if category == "" {
			category = "uncategorized"
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++

		if interaction.SentimentScore != nil {
			sentimentTotal += *interaction.SentimentScore
		}
	}

	// stable sort keeps first-encountered order on equal counts
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topCategoryLimit {
		order = order[:topCategoryLimit]
	}

	for _, category := range order {
		analysis.TopCategories = append(analysis.TopCategories, models.CategoryCount{
			Category: category,
			Count:    counts[category],
		})
	}

	analysis.AverageSentiment = sentimentTotal / float64(analysis.TotalQueries)
	return analysis
}
