// Package twitter implements the media upload and post creation ports
// against the X (Twitter) API.
//
// Media is uploaded through the v1.1 upload endpoint and posts are created
// through the v2 API. Both calls are signed with OAuth 1.0a user context; the
// post client falls back to an app Bearer token when no access token is set.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/bft-labs/bananascale/internal/ports"
)

// Default API hosts.
const (
	DefaultUploadURL = "https://upload.twitter.com"
	DefaultAPIURL    = "https://api.twitter.com"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// Credentials are the account secrets issued by the developer portal.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string
}

// HasUserContext reports whether OAuth 1.0a user credentials are complete.
func (c Credentials) HasUserContext() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// NewUserClient returns an HTTP client that signs requests with OAuth 1.0a.
// base supplies the underlying transport; timeout bounds every request.
func NewUserClient(creds Credentials, base *http.Client, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	client := config.Client(ctx, oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret))
	client.Timeout = timeout
	return client
}

// BearerClient adds an app-only Bearer token to each request.
type BearerClient struct {
	token  string
	client ports.HTTPClient
}

// NewBearerClient wraps client with Bearer authentication.
func NewBearerClient(token string, client ports.HTTPClient) *BearerClient {
	return &BearerClient{token: token, client: client}
}

// Do sets the Authorization header and sends the request.
func (b *BearerClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.client.Do(req)
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string

	// RateLimitReset is when the rate limit window resets, if reported.
	RateLimitReset time.Time
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if !e.RateLimitReset.IsZero() {
		msg += fmt.Sprintf(" (rate limit resets %s)", e.RateLimitReset.UTC().Format(time.RFC3339))
	}
	return msg
}

// errorPayload covers both the v1.1 and v2 error shapes.
type errorPayload struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"errors"`
}

func (p errorPayload) message() string {
	if p.Detail != "" {
		return p.Detail
	}
	for _, e := range p.Errors {
		if e.Message != "" {
			return e.Message
		}
		if e.Detail != "" {
			return e.Detail
		}
	}
	return p.Title
}

// newAPIError builds an APIError from a failed response.
func newAPIError(endpoint string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.message() != "" {
		apiErr.Message = payload.message()
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	if reset := resp.Header.Get("x-rate-limit-reset"); reset != "" {
		var sec int64
		if _, err := fmt.Sscanf(reset, "%d", &sec); err == nil && sec > 0 {
			apiErr.RateLimitReset = time.Unix(sec, 0)
		}
	}
	return apiErr
}
