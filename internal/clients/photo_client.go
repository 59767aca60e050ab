package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"canvas_shop_backend/internal/config"
)

var ErrPhotosNotConfigured = errors.New("stock photo access key not configured")

type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type Photographer struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Links    struct {
		HTML string `json:"html"`
	} `json:"links"`
}

type PhotoLinks struct {
	HTML             string `json:"html"`
	DownloadLocation string `json:"download_location"`
}

// Photo is a stock photo with its size variants and attribution.
type Photo struct {
	ID             string       `json:"id"`
	Description    string       `json:"description"`
	AltDescription string       `json:"alt_description"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Color          string       `json:"color"`
	URLs           PhotoURLs    `json:"urls"`
	User           Photographer `json:"user"`
	Links          PhotoLinks   `json:"links"`
}

type PhotoSearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// PhotoClient reads the stock-photo provider's public API.
type PhotoClient struct {
	cfg        *config.PhotosConfig
	httpClient *http.Client
}

func NewPhotoClient(cfg *config.PhotosConfig) *PhotoClient {
	return &PhotoClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *PhotoClient) Search(ctx context.Context, query string, page, perPage int) (*PhotoSearchResult, error) {
	if c.cfg.AccessKey == "" {
		return nil, ErrPhotosNotConfigured
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("per_page", strconv.Itoa(clamp(perPage, 1, 30)))

	var res PhotoSearchResult
	if err := doJSON(ctx, c.httpClient, "photos", http.MethodGet, c.endpoint("search/photos", q), c.headers(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Random returns count curated random photos.
func (c *PhotoClient) Random(ctx context.Context, count int) ([]Photo, error) {
	if c.cfg.AccessKey == "" {
		return nil, ErrPhotosNotConfigured
	}
	q := url.Values{}
	q.Set("count", strconv.Itoa(clamp(count, 1, 30)))

	var res []Photo
	if err := doJSON(ctx, c.httpClient, "photos", http.MethodGet, c.endpoint("photos/random", q), c.headers(), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *PhotoClient) Get(ctx context.Context, id string) (*Photo, error) {
	if c.cfg.AccessKey == "" {
		return nil, ErrPhotosNotConfigured
	}
	var p Photo
	if err := doJSON(ctx, c.httpClient, "photos", http.MethodGet, c.endpoint("photos/"+url.PathEscape(id), nil), c.headers(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// TriggerDownload registers a download with the provider. It must be called before the
// full-resolution asset is used; the response carries the asset URL.
func (c *PhotoClient) TriggerDownload(ctx context.Context, downloadLocation string) (string, error) {
	if c.cfg.AccessKey == "" {
		return "", ErrPhotosNotConfigured
	}
	if !strings.HasPrefix(downloadLocation, strings.TrimRight(c.cfg.BaseURL, "/")+"/") {
		return "", fmt.Errorf("download location %q is not on the photo provider", downloadLocation)
	}
	var res struct {
		URL string `json:"url"`
	}
	if err := doJSON(ctx, c.httpClient, "photos", http.MethodGet, downloadLocation, c.headers(), nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

func (c *PhotoClient) endpoint(path string, q url.Values) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *PhotoClient) headers() map[string]string {
	return map[string]string{
		"Authorization":  "Client-ID " + c.cfg.AccessKey,
		"Accept-Version": "v1",
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
