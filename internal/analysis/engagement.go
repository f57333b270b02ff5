package analysis

import (
	"fmt"

	"github.com/redditlens/persona-bot/internal/models"
)

// EngagementStyle classifies posting behavior from raw activity counts.
// The rules are checked in order and the first match wins; (0, 0) falls
// through to the balanced case.
func EngagementStyle(posts, comments int) string {
	switch {
	case comments > 3*posts:
		return "Highly interactive, prefers commenting over posting"
	case posts > comments:
		return "Content creator, prefers sharing original posts"
	default:
		return "Balanced between posting and commenting"
	}
}

// MoodLabel derives a mood description from the aggregate compound sentiment.
func MoodLabel(compound float64) string {
	switch {
	case compound > 0.3:
		return "Generally positive and optimistic"
	case compound < -0.3:
		return "Tends to be critical or negative"
	default:
		return "Balanced emotional expression"
	}
}

// Insights assembles the personality-insight map for a profile. The
// primary_interest entry is present only when at least one interest
// category survived classification.
func Insights(posts, comments int, sentiment models.SentimentScore, interests []models.InterestScore) map[string]string {
	insights := map[string]string{
		"mood":       MoodLabel(sentiment.Compound),
		"engagement": EngagementStyle(posts, comments),
	}
	if len(interests) > 0 {
		insights["primary_interest"] = fmt.Sprintf("Primarily interested in %s", interests[0].Category)
	}
	return insights
}
