package reardiff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/gauge/internal/query"
)

// Endpoint paths relative to the configured base URL. The trailing slashes
// match the server's routing and double as cache-key prefixes.
const (
	EndpointTraining   = "training"
	EndpointPrediction = "prediction/"
	EndpointMedia      = "media/"
	EndpointFlyway     = "flyway/"
	EndpointHealth     = "health"
)

// Training label values.
const (
	LabelWouldWatch    = "would_watch"
	LabelWouldNotWatch = "would_not_watch"
)

// PipelineStatuses enumerates the media pipeline stages the dashboard can
// assign.
var PipelineStatuses = []string{
	"ingested",
	"parsed",
	"rejected",
	"downloading",
	"downloaded",
	"transferred",
	"complete",
}

const (
	defaultUserAgent = "gauge/0.1"
	maxBodyBytes     = 4 << 20
)

// Client talks to the rear-diff HTTP API. One request at a time, one
// attempt per request.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// NewClient builds a Client for the given base URL (which must end with a
// slash so endpoint paths resolve beneath the prefix).
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	if !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q needs a scheme and host", baseURL)
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		log:       log,
	}, nil
}

// Get issues a GET for endpoint with the given parameters and decodes the
// listing envelope.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*ListResponse, error) {
	var payload ListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, params, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Patch issues a PATCH with a JSON body and returns the decoded response
// record, which may be empty when the server answers with no body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (Record, error) {
	var payload Record
	if err := c.do(ctx, http.MethodPatch, endpoint, nil, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchTraining lists training records.
func (c *Client) FetchTraining(ctx context.Context, p query.Params) (*ListResponse, error) {
	return c.Get(ctx, EndpointTraining, p.Values())
}

// FetchPredictions lists prediction records.
func (c *Client) FetchPredictions(ctx context.Context, p query.Params) (*ListResponse, error) {
	return c.Get(ctx, EndpointPrediction, p.Values())
}

// FetchMedia lists media records. The media endpoint paginates by page
// number rather than offset.
func (c *Client) FetchMedia(ctx context.Context, p query.Params) (*ListResponse, error) {
	return c.Get(ctx, EndpointMedia, p.PageValues())
}

// FetchMigrations returns the flyway migration history.
func (c *Client) FetchMigrations(ctx context.Context) (*ListResponse, error) {
	return c.Get(ctx, EndpointFlyway, nil)
}

// Health probes the API liveness endpoint.
func (c *Client) Health(ctx context.Context) (Record, error) {
	var payload Record
	if err := c.do(ctx, http.MethodGet, EndpointHealth, nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateLabel sets a new label on a training record. The server treats a
// human-issued label change as reviewed and human-labeled in the same
// write, so those flags ride along.
func (c *Client) UpdateLabel(ctx context.Context, id, label string) (Record, error) {
	if !IsValidTitleID(id) {
		return nil, &InvalidIDError{ID: id}
	}
	body := map[string]any{
		"imdb_id":       id,
		"label":         label,
		"human_labeled": true,
		"reviewed":      true,
	}
	return c.Patch(ctx, EndpointTraining+"/"+id+"/label", body)
}

// MarkReviewed flips only the reviewed flag, used when the reviewer
// confirms the existing label.
func (c *Client) MarkReviewed(ctx context.Context, id string) (Record, error) {
	if !IsValidTitleID(id) {
		return nil, &InvalidIDError{ID: id}
	}
	body := map[string]any{
		"imdb_id":  id,
		"reviewed": true,
	}
	return c.Patch(ctx, EndpointTraining+"/"+id+"/reviewed", body)
}

// SetAnomalous marks or unmarks a training record as anomalous.
func (c *Client) SetAnomalous(ctx context.Context, id string, anomalous bool) (Record, error) {
	if !IsValidTitleID(id) {
		return nil, &InvalidIDError{ID: id}
	}
	body := map[string]any{
		"imdb_id":   id,
		"anomalous": anomalous,
	}
	return c.Patch(ctx, EndpointTraining+"/"+id, body)
}

// UpdatePipeline moves a media item to a new pipeline status.
func (c *Client) UpdatePipeline(ctx context.Context, hash, status string) (Record, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("media hash is empty")
	}
	body := map[string]any{"pipeline_status": status}
	return c.Patch(ctx, "media/"+hash+"/pipeline", body)
}

// SoftDeleteMedia flags a media item as deleted without removing it.
func (c *Client) SoftDeleteMedia(ctx context.Context, hash string) (Record, error) {
	return c.mediaAction(ctx, hash, "soft_delete")
}

// PromoteMedia advances a media item past manual review.
func (c *Client) PromoteMedia(ctx context.Context, hash string) (Record, error) {
	return c.mediaAction(ctx, hash, "promote")
}

// FinishMedia marks a media item's pipeline run complete.
func (c *Client) FinishMedia(ctx context.Context, hash string) (Record, error) {
	return c.mediaAction(ctx, hash, "finish")
}

func (c *Client) mediaAction(ctx context.Context, hash, action string) (Record, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("media hash is empty")
	}
	return c.Patch(ctx, "media/"+hash+"/"+action, map[string]any{})
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	rel := &url.URL{Path: endpoint}
	if params != nil {
		rel.RawQuery = params.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("url", reqURL.String()).Err(err).Msg("request failed")
		return &ConnectivityError{URL: reqURL.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ConnectivityError{URL: reqURL.String(), Err: err}
	}

	c.log.Info().
		Str("method", method).
		Str("url", reqURL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
			URL:    reqURL.String(),
		}
	}
	if dest == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response from %s: %w", reqURL, err)
	}
	return nil
}
