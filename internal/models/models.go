package models

import "time"

// Post is a single submission fetched from a user's profile.
type Post struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`
	URL       string `json:"url"`
}

// Comment is a single comment fetched from a user's profile.
type Comment struct {
	Text      string `json:"text"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`
	URL       string `json:"url"`
}

// UserProfile is one user's public history as returned by the fetch client.
// Both sequences may be empty; every downstream aggregate must handle that.
type UserProfile struct {
	Username       string    `json:"username"`
	AccountCreated time.Time `json:"account_created"`
	PostKarma      int       `json:"karma_post"`
	CommentKarma   int       `json:"karma_comment"`
	Posts          []Post    `json:"posts"`
	Comments       []Comment `json:"comments"`
}

// SentimentScore holds VADER-style polarity fields. Compound is in [-1, 1],
// the rest in [0, 1]. Aggregates average each field independently, so the
// three fractions need not sum to exactly 1.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

// InterestScore is one retained interest category with its keyword-frequency score.
type InterestScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// SubredditActivity counts a user's posts plus comments in one subreddit.
type SubredditActivity struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Citation is a read-only evidence view of one post or comment.
type Citation struct {
	Type      string `json:"type"` // "post" or "comment"
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	URL       string `json:"url"`
	Snippet   string `json:"text_snippet"` // at most 200 characters
}

// PersonaReport is the derived persona for one analysis run. It is written
// once by the composer and then only rendered, never mutated.
type PersonaReport struct {
	Username        string              `json:"username"`
	AccountCreated  time.Time           `json:"account_created"`
	PostKarma       int                 `json:"karma_post"`
	CommentKarma    int                 `json:"karma_comment"`
	TotalPosts      int                 `json:"total_posts"`
	TotalComments   int                 `json:"total_comments"`
	AvgPostScore    float64             `json:"avg_post_score"`
	AvgCommentScore float64             `json:"avg_comment_score"`
	Sentiment       SentimentScore      `json:"sentiment"`
	TopInterests    []InterestScore     `json:"top_interests"`
	TopSubreddits   []SubredditActivity `json:"top_subreddits"`
	Insights        map[string]string   `json:"insights"`
	Citations       []Citation          `json:"citations"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
