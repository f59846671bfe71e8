package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bft-labs/bananascale/internal/ports"
)

const createPostEndpoint = "/2/tweets"

// PostClient implements ports.PostCreator using the v2 API.
type PostClient struct {
	baseURL string
	client  ports.HTTPClient
	logger  ports.Logger
}

// NewPostClient creates a post creator.
func NewPostClient(baseURL string, client ports.HTTPClient, logger ports.Logger) *PostClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &PostClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

type postMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type postRequest struct {
	Text  string     `json:"text"`
	Media *postMedia `json:"media,omitempty"`
}

type postResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	errorPayload
}

// CreatePost publishes text with the given media and returns the post id.
func (c *PostClient) CreatePost(ctx context.Context, text string, mediaIDs []string) (string, error) {
	payload := postRequest{Text: text}
	if len(mediaIDs) > 0 {
		payload.Media = &postMedia{MediaIDs: mediaIDs}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPostEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", newAPIError(createPostEndpoint, resp)
	}

	var pr postResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode post response: %w", err)
	}
	if pr.Data.ID == "" {
		msg := pr.message()
		if msg == "" {
			msg = "no post id"
		}
		return "", &APIError{Endpoint: createPostEndpoint, StatusCode: resp.StatusCode, Message: msg}
	}

	c.logger.Debug("created post", ports.String("post_id", pr.Data.ID))
	return pr.Data.ID, nil
}
