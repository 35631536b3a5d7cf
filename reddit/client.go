package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAuthBase = "https://www.reddit.com"
	defaultAPIBase  = "https://oauth.reddit.com"

	// refresh the token slightly before reddit expires it
	tokenExpirySlack = 30 * time.Second
)

// Client is an application-only (client_credentials) reddit API client.
// It is not safe for concurrent use; the crawler runs strictly sequentially.
type Client struct {
	cli          *http.Client
	clientID     string
	clientSecret string
	userAgent    string

	authBase string
	apiBase  string

	token       string
	tokenExpiry time.Time
}

func NewClient(clientID, clientSecret, userAgent string) *Client {
	return &Client{
		cli: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		authBase:     defaultAuthBase,
		apiBase:      defaultAPIBase,
	}
}

// WithBaseURLs points the client at alternative endpoints. Used by tests.
func (c *Client) WithBaseURLs(authBase, apiBase string) *Client {
	c.authBase = authBase
	c.apiBase = apiBase
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.authBase+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("token request returned non-200 response code: %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("token response carried no access_token")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySlack)

	return nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	return c.authenticate(ctx)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("received non-200 response code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// thing is the generic reddit envelope: a kind tag plus a payload whose
// shape depends on the kind.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

// Listing returns up to limit posts of a subreddit under the given sort
// mode, in listing order. limit <= 0 means the API default page.
func (c *Client) Listing(ctx context.Context, subreddit, sort string, limit int) ([]*Post, error) {
	path := fmt.Sprintf("/r/%s/%s?raw_json=1", url.PathEscape(subreddit), url.PathEscape(sort))
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}

	var l listing
	if err := c.get(ctx, path, &l); err != nil {
		return nil, fmt.Errorf("fetching r/%s/%s: %w", subreddit, sort, err)
	}

	var posts []*Post
	for _, child := range l.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("decoding post in r/%s: %w", subreddit, err)
		}
		posts = append(posts, &p)
	}

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	return posts, nil
}

// Comments returns the top-level comment children of a post in source
// order, placeholder nodes included, so callers can observe unreadable
// entries where the original tree was truncated.
func (c *Client) Comments(ctx context.Context, subreddit, postID string, limit int) ([]*Comment, error) {
	path := fmt.Sprintf("/r/%s/comments/%s?raw_json=1&depth=1",
		url.PathEscape(subreddit), url.PathEscape(postID))
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}

	// the comments endpoint answers with two listings: [post, comments]
	var ls []listing
	if err := c.get(ctx, path, &ls); err != nil {
		return nil, fmt.Errorf("fetching comments of %s in r/%s: %w", postID, subreddit, err)
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("comments response for %s carried %d listings, want 2", postID, len(ls))
	}

	var comments []*Comment
	for _, child := range ls[1].Data.Children {
		cm := Comment{Kind: child.Kind}
		if child.Kind == "t1" {
			if err := json.Unmarshal(child.Data, &cm); err != nil {
				return nil, fmt.Errorf("decoding comment of %s: %w", postID, err)
			}
		}
		comments = append(comments, &cm)
	}

	return comments, nil
}
