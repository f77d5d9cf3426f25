package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when the client has no project or API key.
var ErrNotConfigured = errors.New("firestore not configured")

// PlaceholderAPIKey is the key shipped in sample configs; it counts as unset.
const PlaceholderAPIKey = "API_KEY_ICI"

const (
	DefaultBaseURL    = "https://firestore.googleapis.com"
	DefaultDatabase   = "(default)"
	defaultUserAgent  = "swipedeck/0.1"
	defaultTimeout    = 5 * time.Second
	requestIDHeader   = "X-Request-Id"
	maxErrorBodyBytes = 512
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	ProjectID string
	APIKey    string
	Database  string
	Timeout   time.Duration
}

// Configured reports whether the options name a project and a real key.
func (o Options) Configured() bool {
	key := strings.TrimSpace(o.APIKey)
	return strings.TrimSpace(o.ProjectID) != "" && key != "" && key != PlaceholderAPIKey
}

// Querier runs collection queries. *Client implements it.
type Querier interface {
	RunQuery(ctx context.Context, req RunQueryRequest) ([]Document, error)
}

// Ensure Client implements Querier at compile time.
var _ Querier = (*Client)(nil)

// Client talks to the Firestore REST API.
type Client struct {
	baseURL   *url.URL
	project   string
	database  string
	apiKey    string
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. It returns ErrNotConfigured when the options
// lack a project or key.
func NewClient(opts Options) (*Client, error) {
	if !opts.Configured() {
		return nil, ErrNotConfigured
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	database := strings.TrimSpace(opts.Database)
	if database == "" {
		database = DefaultDatabase
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		project:   strings.TrimSpace(opts.ProjectID),
		database:  database,
		apiKey:    strings.TrimSpace(opts.APIKey),
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// RunQuery executes a structured query and returns the matched documents in
// response order. Rows without a document are skipped.
func (c *Client) RunQuery(ctx context.Context, query RunQueryRequest) ([]Document, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	values := url.Values{}
	values.Set("key", c.apiKey)
	rel := &url.URL{
		Path:     fmt.Sprintf("/v1/projects/%s/databases/%s/documents:runQuery", c.project, c.database),
		RawQuery: values.Encode(),
	}
	var rows []QueryRow
	if err := c.doURL(ctx, http.MethodPost, rel, body, &rows); err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		if row.Document == nil {
			continue
		}
		docs = append(docs, *row.Document)
	}
	return docs, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
		}
		return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, msg)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
