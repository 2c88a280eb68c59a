// Package embedding hands datasets to the external embedding service and
// polls the queue for datasets that still need embedding.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 10 * time.Minute

	processDatasetPath = "/embeddings/process-dataset"
)

// Service is anything that can embed one dataset.
type Service interface {
	ProcessDataset(ctx context.Context, datasetMetadataID int) error
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, baseLog *logger.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     baseLog.With("client", "EmbeddingClient"),
	}
}

type processDatasetRequest struct {
	DatasetMetadataID int `json:"datasetMetadataID"`
}

// ProcessDataset asks the embedding service to embed the dataset. Any non-2xx
// response is an error.
func (c *Client) ProcessDataset(ctx context.Context, datasetMetadataID int) error {
	body, err := json.Marshal(processDatasetRequest{DatasetMetadataID: datasetMetadataID})
	if err != nil {
		return fmt.Errorf("encode embedding request: %w", err)
	}
	url := c.baseURL + processDatasetPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s: http %d: %s", url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	c.log.Debug("Embedding requested", "dataset_metadata_id", datasetMetadataID)
	return nil
}
