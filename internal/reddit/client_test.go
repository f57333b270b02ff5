package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const aboutBody = `{"data": {"name": "test_user", "created_utc": 1577836800, "link_karma": 1500, "comment_karma": 3200}}`

const submittedBody = `{"data": {"children": [
	{"data": {"title": "A post", "selftext": "post body", "score": 45, "subreddit": "golang", "permalink": "/r/golang/comments/abc/a_post/"}}
]}}`

const commentsBody = `{"data": {"children": [
	{"data": {"body": "a comment", "score": 7, "subreddit": "python", "permalink": "/r/python/comments/def/a_comment/"}},
	{"data": {"body": "another comment", "score": 2, "subreddit": "golang", "permalink": "/r/golang/comments/ghi/another/"}}
]}}`

func newTestClient(t *testing.T, apiHandler http.HandlerFunc) *Client {
	t.Helper()

	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client_id", user)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "token123", "token_type": "bearer", "expires_in": 3600}`))
	}))
	t.Cleanup(authServer.Close)

	apiServer := httptest.NewServer(apiHandler)
	t.Cleanup(apiServer.Close)

	client := NewClient("client_id", "client_secret", "persona-bot-test/1.0")
	client.authURL = authServer.URL
	client.apiURL = apiServer.URL
	return client
}

func TestClient_FetchUserData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/user/test_user/about.json":
			w.Write([]byte(aboutBody))
		case "/user/test_user/submitted.json":
			assert.Equal(t, "25", r.URL.Query().Get("limit"))
			w.Write([]byte(submittedBody))
		case "/user/test_user/comments.json":
			w.Write([]byte(commentsBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	profile, err := client.FetchUserData(context.Background(), "test_user", 25)

	assert.NoError(t, err)
	assert.Equal(t, "test_user", profile.Username)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), profile.AccountCreated)
	assert.Equal(t, 1500, profile.PostKarma)
	assert.Equal(t, 3200, profile.CommentKarma)

	assert.Len(t, profile.Posts, 1)
	assert.Equal(t, "A post", profile.Posts[0].Title)
	assert.Equal(t, "post body", profile.Posts[0].Text)
	assert.Equal(t, 45, profile.Posts[0].Score)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc/a_post/", profile.Posts[0].URL)

	assert.Len(t, profile.Comments, 2)
	assert.Equal(t, "a comment", profile.Comments[0].Text)
	assert.Equal(t, "python", profile.Comments[0].Subreddit)
	assert.Equal(t, "https://reddit.com/r/python/comments/def/a_comment/", profile.Comments[0].URL)
}

func TestClient_FetchUserData_UserNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchUserData(context.Background(), "ghost", 100)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_FetchUserData_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchUserData(context.Background(), "test_user", 100)

	assert.ErrorIs(t, err, ErrUpstream)
}

// newCountingClient backs a client with servers that count auth round-trips
// and serve canned user data for any username.
func newCountingClient(t *testing.T, expiresIn string, authCalls *int32) *Client {
	t.Helper()

	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(authCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "token123", "token_type": "bearer", "expires_in": ` + expiresIn + `}`))
	}))
	t.Cleanup(authServer.Close)

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/about.json"):
			w.Write([]byte(aboutBody))
		case strings.HasSuffix(r.URL.Path, "/submitted.json"):
			w.Write([]byte(submittedBody))
		default:
			w.Write([]byte(commentsBody))
		}
	}))
	t.Cleanup(apiServer.Close)

	client := NewClient("client_id", "client_secret", "persona-bot-test/1.0")
	client.authURL = authServer.URL
	client.apiURL = apiServer.URL
	return client
}

func TestClient_ConcurrentFetches(t *testing.T) {
	var authCalls int32
	client := newCountingClient(t, "3600", &authCalls)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.FetchUserData(context.Background(), "test_user", 100)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	// The token is cached under the client's lock, so concurrent fetches
	// share a single auth round-trip.
	assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))
}

func TestClient_TokenReusedAcrossFetches(t *testing.T) {
	var authCalls int32
	client := newCountingClient(t, "3600", &authCalls)

	_, err := client.FetchUserData(context.Background(), "test_user", 100)
	assert.NoError(t, err)
	_, err = client.FetchUserData(context.Background(), "test_user", 100)
	assert.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))
}

func TestClient_TokenRefreshedAfterExpiry(t *testing.T) {
	var authCalls int32
	// With expires_in inside the early-refresh margin the cached token is
	// already considered stale, so every fetch re-authenticates.
	client := newCountingClient(t, "10", &authCalls)

	_, err := client.FetchUserData(context.Background(), "test_user", 100)
	assert.NoError(t, err)
	_, err = client.FetchUserData(context.Background(), "test_user", 100)
	assert.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
}

func TestClient_FetchUserData_AuthFailure(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(authServer.Close)

	client := NewClient("client_id", "bad_secret", "persona-bot-test/1.0")
	client.authURL = authServer.URL

	_, err := client.FetchUserData(context.Background(), "test_user", 100)

	assert.ErrorIs(t, err, ErrUpstream)
}
