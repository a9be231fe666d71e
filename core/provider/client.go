package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAssetNotFound is returned by GetAsset when the provider no longer knows
// the asset. Callers treat this as an orphan signal, not a transport failure.
var ErrAssetNotFound = errors.New("provider asset not found")

// AssetStatus is the provider-side lifecycle state of an asset.
type AssetStatus string

const (
	AssetPreparing AssetStatus = "preparing"
	AssetReady     AssetStatus = "ready"
	AssetErrored   AssetStatus = "errored"
)

// PlaybackID is a public playback identifier issued by the provider.
type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

// Asset is the provider's server-side representation of a single video.
type Asset struct {
	ID          string       `json:"id"`
	Status      AssetStatus  `json:"status"`
	UploadID    string       `json:"upload_id,omitempty"`
	Passthrough string       `json:"passthrough,omitempty"`
	Duration    float64      `json:"duration,omitempty"`
	AspectRatio string       `json:"aspect_ratio,omitempty"`
	PlaybackIDs []PlaybackID `json:"playback_ids,omitempty"`
}

// Client defines the interface for transcoding provider operations.
type Client interface {
	// GetAsset retrieves a single asset by id.
	// Returns ErrAssetNotFound if the provider no longer lists it.
	GetAsset(ctx context.Context, assetID string) (*Asset, error)
	// ListAssets retrieves the provider's full asset list.
	// Pagination is handled internally; callers get a materialized slice.
	ListAssets(ctx context.Context) ([]Asset, error)
	// CreatePlaybackID asks the provider to issue a new public playback
	// identifier for the asset.
	CreatePlaybackID(ctx context.Context, assetID string) (*PlaybackID, error)
}

// NewClient creates an HTTP client for the provider API based on the configuration.
func NewClient(cfg Config) (Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	// Strict transport timeouts; per-call context deadlines come on top.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		base:        base,
		tokenID:     cfg.TokenID,
		tokenSecret: cfg.TokenSecret,
		pageSize:    pageSize,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type httpClient struct {
	base        *url.URL
	tokenID     string
	tokenSecret string
	pageSize    int
	http        *http.Client
}

// envelope is the provider's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *httpClient) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	var asset Asset
	if err := c.do(ctx, http.MethodGet, "/video/v1/assets/"+url.PathEscape(assetID), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *httpClient) ListAssets(ctx context.Context) ([]Asset, error) {
	var all []Asset
	for page := 1; ; page++ {
		path := fmt.Sprintf("/video/v1/assets?limit=%d&page=%d", c.pageSize, page)
		var batch []Asset
		if err := c.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
			return nil, fmt.Errorf("failed to list assets (page %d): %w", page, err)
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

func (c *httpClient) CreatePlaybackID(ctx context.Context, assetID string) (*PlaybackID, error) {
	body := strings.NewReader(`{"policy":"public"}`)
	var pb PlaybackID
	path := "/video/v1/assets/" + url.PathEscape(assetID) + "/playback-ids"
	if err := c.do(ctx, http.MethodPost, path, body, &pb); err != nil {
		return nil, err
	}
	return &pb, nil
}

// do issues a request against the provider API and decodes the enveloped
// response body into out.
func (c *httpClient) do(ctx context.Context, method, path string, body *strings.Reader, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid provider path %s: %w", path, err)
	}
	target := c.base.ResolveReference(ref).String()

	var req *http.Request
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}
	req.SetBasicAuth(c.tokenID, c.tokenSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrAssetNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode provider payload: %w", err)
	}
	return nil
}
