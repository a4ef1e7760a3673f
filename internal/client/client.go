// Package client provides an HTTP client for the loudly JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/loudly/loudly/internal/auth"
	"github.com/loudly/loudly/internal/comment"
	"github.com/loudly/loudly/internal/entity"
)

// Client is an HTTP client for the loudly API. It keeps the session cookie
// set by Login for later admin requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// New creates a new API client.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		now:        time.Now,
	}
}

// Page is one page of comments as returned by GET /api/comment/.
type Page struct {
	UniqueID string             `json:"uniqueId"`
	Comments []*comment.Comment `json:"comments"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	Total    int                `json:"total"`
}

// NewComment is the body of a comment post.
type NewComment struct {
	Content  string `json:"content"`
	Nickname string `json:"nickname,omitempty"`
	IconID   int    `json:"iconId,omitempty"`
}

// Login answers the digest challenge for user and password using the
// current time. The session cookie is kept for later calls.
func (c *Client) Login(user, password string) error {
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	body := map[string]string{
		"username":  user,
		"password":  auth.Digest(user, password, ts),
		"timestamp": ts,
	}
	return c.send("POST", "/api/auth/login", body, nil)
}

// Logout destroys the server-side session.
func (c *Client) Logout() error {
	return c.send("POST", "/api/auth/logout", nil, nil)
}

// ListComments returns one page of comments for uniqueID. A limit of 0 uses
// the server's page size.
func (c *Client) ListComments(uniqueID string, page, limit int) (*Page, error) {
	q := url.Values{"uniqueId": {uniqueID}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var p Page
	if err := c.send("GET", "/api/comment/?"+q.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PostComment adds a comment to uniqueID.
func (c *Client) PostComment(uniqueID string, nc NewComment) (*comment.Comment, error) {
	var resp struct {
		Comment *comment.Comment `json:"comment"`
	}
	path := "/api/comment/?" + url.Values{"uniqueId": {uniqueID}}.Encode()
	if err := c.send("POST", path, nc, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}

// DeleteComment removes comment id from uniqueID. Requires a prior Login.
func (c *Client) DeleteComment(uniqueID string, id int64) error {
	q := url.Values{"uniqueId": {uniqueID}, "id": {strconv.FormatInt(id, 10)}}
	return c.send("DELETE", "/api/comment/?"+q.Encode(), nil, nil)
}

// GetEntity returns the moderation state of uniqueID.
func (c *Client) GetEntity(uniqueID string) (*entity.Entity, error) {
	var e entity.Entity
	path := "/api/entity/?" + url.Values{"uniqueId": {uniqueID}}.Encode()
	if err := c.send("GET", path, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetBanned bans or unbans uniqueID. Requires a prior Login.
func (c *Client) SetBanned(uniqueID string, banned bool) error {
	path := "/api/entity/?" + url.Values{"uniqueId": {uniqueID}}.Encode()
	return c.send("PUT", path, map[string]bool{"banned": banned}, nil)
}

// send performs a request with an optional JSON body and decodes the data
// field of the response envelope into result.
func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && env.Msg != "" {
			return &Error{StatusCode: resp.StatusCode, Msg: env.Msg}
		}
		return &Error{StatusCode: resp.StatusCode, Msg: http.StatusText(resp.StatusCode)}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// Error is a non-2xx answer from the server.
type Error struct {
	StatusCode int
	Msg        string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Msg, e.StatusCode)
}

// Health checks that the server answers GET /health.
func (c *Client) Health() error {
	req, err := http.NewRequest("GET", c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}
