package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"

	"github.com/redditlens/persona-bot/internal/models"
)

// Tokenizer turns lower-cased text into normalized word tokens with stop
// words already removed. Implementations must be restartable and finite.
type Tokenizer interface {
	Tokens(text string) []string
}

// StopwordTokenizer is the default Tokenizer. It removes the fixed stop-word
// set for the configured language and splits on whitespace.
type StopwordTokenizer struct {
	lang string
}

// Ensure StopwordTokenizer implements Tokenizer
var _ Tokenizer = (*StopwordTokenizer)(nil)

// NewStopwordTokenizer creates a tokenizer using the English stop-word set
func NewStopwordTokenizer() *StopwordTokenizer {
	return &StopwordTokenizer{lang: "en"}
}

func (t *StopwordTokenizer) Tokens(text string) []string {
	return strings.Fields(stopwords.CleanString(text, t.lang, false))
}

type interestCategory struct {
	name     string
	keywords []string
}

// Interest taxonomy. Definition order is the tie-break for equal scores, so
// the order of this slice is part of the contract.
var interestCategories = []interestCategory{
	{"technology", []string{"python", "programming", "software", "tech", "computer", "code", "development", "ai", "machine", "learning"}},
	{"gaming", []string{"game", "gaming", "play", "player", "steam", "console", "xbox", "playstation", "nintendo", "fps", "rpg"}},
	{"finance", []string{"money", "investment", "stock", "crypto", "bitcoin", "trading", "portfolio", "financial", "market"}},
	{"fitness", []string{"gym", "workout", "exercise", "fitness", "muscle", "weight", "training", "health", "diet"}},
	{"entertainment", []string{"movie", "film", "tv", "show", "series", "music", "band", "song", "album", "netflix"}},
	{"sports", []string{"football", "basketball", "soccer", "baseball", "sport", "team", "game", "match", "player", "season"}},
	{"politics", []string{"government", "political", "politics", "election", "vote", "politician", "policy", "law", "congress"}},
	{"education", []string{"school", "university", "college", "student", "study", "education", "learn", "teacher", "class", "degree"}},
}

// ClassifyInterests scores the fixed interest categories against the token
// frequencies of text. Categories whose keywords never appear are dropped
// entirely. The result is sorted by score descending; equal scores keep
// category-definition order.
func ClassifyInterests(tokenizer Tokenizer, text string) []models.InterestScore {
	frequencies := make(map[string]int)
	for _, token := range tokenizer.Tokens(strings.ToLower(text)) {
		if utf8.RuneCountInString(token) > 2 && isAlphanumeric(token) {
			frequencies[token]++
		}
	}

	var interests []models.InterestScore
	for _, category := range interestCategories {
		score := 0
		for _, keyword := range category.keywords {
			score += frequencies[keyword]
		}
		if score > 0 {
			interests = append(interests, models.InterestScore{Category: category.name, Score: score})
		}
	}

	sort.SliceStable(interests, func(i, j int) bool {
		return interests[i].Score > interests[j].Score
	})

	return interests
}

func isAlphanumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return token != ""
}
