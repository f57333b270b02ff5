package analysis

import (
	"sort"

	"github.com/redditlens/persona-bot/internal/models"
)

// snippetLimit bounds citation text so long posts don't leak into the report.
const snippetLimit = 200

// SelectCitations ranks every post and comment by score descending and
// returns at most n evidence citations. The sort is stable, so items with
// equal scores keep fetch order, posts before comments.
func SelectCitations(posts []models.Post, comments []models.Comment, n int) []models.Citation {
	items := make([]models.Citation, 0, len(posts)+len(comments))

	for _, post := range posts {
		items = append(items, models.Citation{
			Type:      "post",
			Subreddit: post.Subreddit,
			Score:     post.Score,
			URL:       post.URL,
			Snippet:   post.Title + " " + post.Text,
		})
	}
	for _, comment := range comments {
		items = append(items, models.Citation{
			Type:      "comment",
			Subreddit: comment.Subreddit,
			Score:     comment.Score,
			URL:       comment.URL,
			Snippet:   comment.Text,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if len(items) > n {
		items = items[:n]
	}

	for i := range items {
		items[i].Snippet = truncate(items[i].Snippet, snippetLimit)
	}

	return items
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
