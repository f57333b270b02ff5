package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/redditlens/persona-bot/internal/models"
)

var (
	// ErrUserNotFound is returned when the requested account does not exist.
	ErrUserNotFound = errors.New("reddit user not found")
	// ErrUpstream covers transport, auth and unexpected-status failures.
	ErrUpstream = errors.New("reddit api request failed")
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"
)

// Client fetches public user data from the Reddit API. One Client is shared
// across concurrent analyses; the cached token is the only shared state and
// is guarded by mu.
type Client struct {
	clientID     string
	clientSecret string
	userAgent    string
	client       *resty.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	// Overridable in tests.
	authURL string
	apiURL  string
}

// NewClient creates a new Reddit client
func NewClient(clientID, clientSecret, userAgent string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		client:       resty.New().SetTimeout(30 * time.Second),
		authURL:      defaultAuthURL,
		apiURL:       defaultAPIURL,
	}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type aboutResponse struct {
	Data struct {
		Name         string  `json:"name"`
		CreatedUTC   float64 `json:"created_utc"`
		LinkKarma    int     `json:"link_karma"`
		CommentKarma int     `json:"comment_karma"`
	} `json:"data"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data listingItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingItem struct {
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Body      string `json:"body"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
}

// FetchUserData returns account metadata plus the user's newest posts and
// comments, each sequence bounded by limit.
func (c *Client) FetchUserData(ctx context.Context, username string, limit int) (*models.UserProfile, error) {
	token, err := c.token()
	if err != nil {
		return nil, fmt.Errorf("%w: authentication: %v", ErrUpstream, err)
	}

	var about aboutResponse
	if err := c.get(ctx, token, fmt.Sprintf("%s/user/%s/about.json", c.apiURL, username), &about); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		Username:       username,
		AccountCreated: time.Unix(int64(about.Data.CreatedUTC), 0).UTC(),
		PostKarma:      about.Data.LinkKarma,
		CommentKarma:   about.Data.CommentKarma,
	}

	var submitted listingResponse
	if err := c.get(ctx, token, fmt.Sprintf("%s/user/%s/submitted.json?sort=new&limit=%d", c.apiURL, username, limit), &submitted); err != nil {
		return nil, err
	}
	for _, child := range submitted.Data.Children {
		item := child.Data
		profile.Posts = append(profile.Posts, models.Post{
			Title:     item.Title,
			Text:      item.Selftext,
			Score:     item.Score,
			Subreddit: item.Subreddit,
			URL:       fmt.Sprintf("https://reddit.com%s", item.Permalink),
		})
	}

	var comments listingResponse
	if err := c.get(ctx, token, fmt.Sprintf("%s/user/%s/comments.json?sort=new&limit=%d", c.apiURL, username, limit), &comments); err != nil {
		return nil, err
	}
	for _, child := range comments.Data.Children {
		item := child.Data
		profile.Comments = append(profile.Comments, models.Comment{
			Text:      item.Body,
			Score:     item.Score,
			Subreddit: item.Subreddit,
			URL:       fmt.Sprintf("https://reddit.com%s", item.Permalink),
		})
	}

	logrus.Debugf("Fetched %d posts and %d comments for u/%s", len(profile.Posts), len(profile.Comments), username)
	return profile, nil
}

// token returns the cached access token, authenticating only when the token
// is missing or about to expire.
func (c *Client) token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	resp, err := c.client.R().
		SetHeader("User-Agent", c.userAgent).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post(c.authURL)

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode())
	}

	var authResp authResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", err
	}

	c.accessToken = authResp.AccessToken
	// Refresh a little early so requests in flight never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(authResp.ExpiresIn)*time.Second - 30*time.Second)
	return c.accessToken, nil
}

func (c *Client) get(ctx context.Context, token, url string, out interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("User-Agent", c.userAgent).
		Get(url)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	return nil
}
