package persona

import (
	"fmt"
	"strings"

	"github.com/redditlens/persona-bot/internal/models"
)

// Insight keys in render order. The map itself carries no ordering.
var insightOrder = []string{"mood", "engagement", "primary_interest"}

// Render serializes a persona report into the fixed text layout. It is pure
// formatting: every value is already computed by the composer.
func Render(report *models.PersonaReport) []byte {
	var b strings.Builder

	b.WriteString("Reddit User Persona Analysis\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Username: %s\n", report.Username)
	fmt.Fprintf(&b, "Account Created: %s\n", report.AccountCreated.Format("2006-01-02"))
	fmt.Fprintf(&b, "Post Karma: %d\n", report.PostKarma)
	fmt.Fprintf(&b, "Comment Karma: %d\n\n", report.CommentKarma)

	b.WriteString("Activity Summary:\n")
	fmt.Fprintf(&b, "- Total Posts: %d\n", report.TotalPosts)
	fmt.Fprintf(&b, "- Total Comments: %d\n", report.TotalComments)
	fmt.Fprintf(&b, "- Average Post Score: %.2f\n", report.AvgPostScore)
	fmt.Fprintf(&b, "- Average Comment Score: %.2f\n\n", report.AvgCommentScore)

	b.WriteString("Sentiment Analysis:\n")
	fmt.Fprintf(&b, "- Overall Sentiment: %.3f\n", report.Sentiment.Compound)
	fmt.Fprintf(&b, "- Positive: %.3f\n", report.Sentiment.Positive)
	fmt.Fprintf(&b, "- Negative: %.3f\n", report.Sentiment.Negative)
	fmt.Fprintf(&b, "- Neutral: %.3f\n\n", report.Sentiment.Neutral)

	b.WriteString("Top Interests:\n")
	for _, interest := range report.TopInterests {
		fmt.Fprintf(&b, "- %s: %d\n", strings.Title(interest.Category), interest.Score)
	}
	b.WriteString("\n")

	b.WriteString("Most Active Subreddits:\n")
	for _, sub := range report.TopSubreddits {
		fmt.Fprintf(&b, "- r/%s: %d posts/comments\n", sub.Name, sub.Count)
	}
	b.WriteString("\n")

	b.WriteString("Personality Insights:\n")
	for _, key := range insightOrder {
		if value, ok := report.Insights[key]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", strings.Title(strings.ReplaceAll(key, "_", " ")), value)
		}
	}
	b.WriteString("\n")

	b.WriteString("Citations and Evidence:\n")
	for i, citation := range report.Citations {
		fmt.Fprintf(&b, "%d. %s in r/%s (Score: %d)\n", i+1, strings.Title(citation.Type), citation.Subreddit, citation.Score)
		fmt.Fprintf(&b, "   Content: %s\n", citation.Snippet)
		fmt.Fprintf(&b, "   Source: %s\n\n", citation.URL)
	}

	fmt.Fprintf(&b, "Analysis completed on: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	return []byte(b.String())
}
