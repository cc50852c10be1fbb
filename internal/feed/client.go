package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cityfeed/internal/config"
	"cityfeed/internal/violation"
)

// HTTPDoer describes the HTTP client used by the feed client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client pages through a CKAN datastore_search resource.
type Client struct {
	endpoint   string
	resourceID string
	token      string
	pageSize   int
	client     HTTPDoer
	logger     *slog.Logger
}

// NewClient constructs a feed client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		endpoint:   cfg.Feed.Endpoint,
		resourceID: cfg.Feed.ResourceID,
		token:      cfg.Feed.APIToken,
		pageSize:   cfg.Feed.PageSize,
		client:     &http.Client{Timeout: time.Duration(cfg.Feed.RequestTimeout) * time.Second},
		logger:     logger,
	}
}

// NewClientWithDoer constructs a feed client with an explicit HTTP doer.
func NewClientWithDoer(cfg *config.Config, doer HTTPDoer, logger *slog.Logger) *Client {
	c := NewClient(cfg, logger)
	c.client = doer
	return c
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	} `json:"result"`
}

// FetchAll retrieves every record the portal currently serves, in upstream
// order. The portal has no usable date filter, so incremental updates fetch
// everything and rely on the merge engine's deduplication.
func (c *Client) FetchAll(ctx context.Context) ([]violation.RawRecord, error) {
	var records []violation.RawRecord
	offset := 0

	for {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, row := range page {
			records = append(records, mapRecord(row))
		}
		c.logger.Debug("fetched feed page", "offset", offset, "rows", len(page))
		if len(page) < c.pageSize {
			break
		}
		offset += c.pageSize
	}

	c.logger.Info("feed fetch complete", "records", len(records))
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("resource_id", c.resourceID)
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed page at offset %d: %w", offset, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d at offset %d", resp.StatusCode, offset)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("feed reported failure at offset %d", offset)
	}
	return decoded.Result.Records, nil
}
