package analysis

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/redditlens/persona-bot/internal/models"
)

// SentimentScorer scores one text fragment. Implementations must be pure:
// the same fragment always yields the same score.
type SentimentScorer interface {
	Score(text string) models.SentimentScore
}

// VaderScorer is the default SentimentScorer, backed by the VADER lexicon.
// Reddit markdown and links are stripped before scoring.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// Ensure VaderScorer implements SentimentScorer
var _ SentimentScorer = (*VaderScorer)(nil)

// NewVaderScorer creates a scorer with a fresh VADER analyzer
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Score(text string) models.SentimentScore {
	scores := v.analyzer.PolarityScores(stripMarkdown(text))
	return models.SentimentScore{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
	}
}

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// stripMarkdown flattens Reddit markdown into plain text so formatting
// characters don't skew the lexicon lookup.
func stripMarkdown(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // keep only the link text
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	plain = bareURLPattern.ReplaceAllString(plain, "")
	return strings.Join(strings.Fields(plain), " ")
}

// Fragments builds the scoreable text fragments for a profile: title plus
// body for every post, then the body of every comment, in fetch order.
func Fragments(posts []models.Post, comments []models.Comment) []string {
	fragments := make([]string, 0, len(posts)+len(comments))
	for _, post := range posts {
		fragments = append(fragments, post.Title+" "+post.Text)
	}
	for _, comment := range comments {
		fragments = append(fragments, comment.Text)
	}
	return fragments
}

// AggregateSentiment averages per-fragment scores field by field. Fragments
// that are empty or whitespace-only are dropped before scoring and do not
// count toward the denominator. With no scoreable fragments every field is 0.
func AggregateSentiment(scorer SentimentScorer, fragments []string) models.SentimentScore {
	var sum models.SentimentScore
	scored := 0

	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		score := scorer.Score(fragment)
		sum.Compound += score.Compound
		sum.Positive += score.Positive
		sum.Negative += score.Negative
		sum.Neutral += score.Neutral
		scored++
	}

	if scored == 0 {
		return models.SentimentScore{}
	}

	n := float64(scored)
	return models.SentimentScore{
		Compound: sum.Compound / n,
		Positive: sum.Positive / n,
		Negative: sum.Negative / n,
		Neutral:  sum.Neutral / n,
	}
}
