package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bft-labs/bananascale/internal/ports"
)

const mediaUploadEndpoint = "/1.1/media/upload.json"

// MediaClient implements ports.MediaUploader using the v1.1 upload endpoint.
type MediaClient struct {
	baseURL string
	client  ports.HTTPClient
	logger  ports.Logger
}

// NewMediaClient creates a media uploader. client must sign requests with
// OAuth 1.0a user context.
func NewMediaClient(baseURL string, client ports.HTTPClient, logger ports.Logger) *MediaClient {
	if baseURL == "" {
		baseURL = DefaultUploadURL
	}
	return &MediaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

type mediaResponse struct {
	MediaID       int64  `json:"media_id"`
	MediaIDString string `json:"media_id_string"`
}

// UploadMedia uploads an image and returns its media id.
func (c *MediaClient) UploadMedia(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("media_category", "tweet_image"); err != nil {
		return "", fmt.Errorf("write media category: %w", err)
	}

	mediaPart, err := writer.CreateFormFile("media", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("create media field: %w", err)
	}
	if _, err := mediaPart.Write(data); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+mediaUploadEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", newAPIError(mediaUploadEndpoint, resp)
	}

	var mr mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("decode media response: %w", err)
	}

	id := mr.MediaIDString
	if id == "" && mr.MediaID != 0 {
		id = strconv.FormatInt(mr.MediaID, 10)
	}
	if id == "" {
		return "", fmt.Errorf("media response has no media id")
	}

	c.logger.Debug("uploaded media",
		ports.String("media_id", id),
		ports.Int("bytes", len(data)),
	)
	return id, nil
}
