package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

const (
	DefaultDocumentsBaseURL = "https://catalogue.ceh.ac.uk/documents"
	DefaultIDBaseURL        = "https://catalogue.ceh.ac.uk/id"

	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = int64(32 << 20)
)

// Config locates the catalogue endpoints.
type Config struct {
	DocumentsBaseURL string
	IDBaseURL        string
	Timeout          time.Duration
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.DocumentsBaseURL) == "" {
		c.DocumentsBaseURL = DefaultDocumentsBaseURL
	}
	if strings.TrimSpace(c.IDBaseURL) == "" {
		c.IDBaseURL = DefaultIDBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.DocumentsBaseURL = strings.TrimRight(c.DocumentsBaseURL, "/")
	c.IDBaseURL = strings.TrimRight(c.IDBaseURL, "/")
	return c
}

func NewHTTPClient(cfg Config) *http.Client {
	return &http.Client{Timeout: cfg.withDefaults().Timeout}
}

// HTTPExtractor fetches one format with a single GET.
type HTTPExtractor struct {
	docType  catalogue.DocumentType
	accept   string
	buildURL func(identifier string) string
	client   *http.Client
	maxBytes int64
}

func (e *HTTPExtractor) Type() catalogue.DocumentType { return e.docType }

func (e *HTTPExtractor) URL(identifier string) string { return e.buildURL(identifier) }

func (e *HTTPExtractor) Extract(ctx context.Context, identifier string) (string, error) {
	client := e.client
	if client == nil {
		client = http.DefaultClient
	}
	u := e.buildURL(identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "CatalogueETL/1.0")
	if e.accept != "" {
		req.Header.Set("Accept", e.accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("GET %s: http %d", u, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > e.maxBytes {
		return "", fmt.Errorf("GET %s: response too large (%d > %d)", u, len(b), e.maxBytes)
	}
	return string(b), nil
}

func documentsURL(base, format string) func(string) string {
	return func(identifier string) string {
		return fmt.Sprintf("%s/%s?format=%s", base, url.PathEscape(identifier), format)
	}
}

func NewJSONExtractor(cfg Config, client *http.Client) *HTTPExtractor {
	cfg = cfg.withDefaults()
	return &HTTPExtractor{
		docType:  catalogue.DocumentTypeJSON,
		accept:   "application/json",
		buildURL: documentsURL(cfg.DocumentsBaseURL, "json"),
		client:   client,
		maxBytes: defaultMaxBytes,
	}
}

func NewJSONLDExtractor(cfg Config, client *http.Client) *HTTPExtractor {
	cfg = cfg.withDefaults()
	return &HTTPExtractor{
		docType:  catalogue.DocumentTypeJSONLD,
		accept:   "application/ld+json, application/json;q=0.9",
		buildURL: documentsURL(cfg.DocumentsBaseURL, "jsonld"),
		client:   client,
		maxBytes: defaultMaxBytes,
	}
}

func NewTurtleExtractor(cfg Config, client *http.Client) *HTTPExtractor {
	cfg = cfg.withDefaults()
	return &HTTPExtractor{
		docType:  catalogue.DocumentTypeTurtle,
		accept:   "text/turtle, */*;q=0.1",
		buildURL: documentsURL(cfg.DocumentsBaseURL, "ttl"),
		client:   client,
		maxBytes: defaultMaxBytes,
	}
}

// NewISO19115Extractor reads the record from the id endpoint, {base}/{id}.xml.
func NewISO19115Extractor(cfg Config, client *http.Client) *HTTPExtractor {
	cfg = cfg.withDefaults()
	base := cfg.IDBaseURL
	return &HTTPExtractor{
		docType: catalogue.DocumentTypeISO19115,
		accept:  "application/xml, text/xml;q=0.9",
		buildURL: func(identifier string) string {
			return fmt.Sprintf("%s/%s.xml", base, url.PathEscape(identifier))
		},
		client:   client,
		maxBytes: defaultMaxBytes,
	}
}

// DefaultExtractors returns one extractor per supported format sharing client.
func DefaultExtractors(cfg Config, client *http.Client) []FormatExtractor {
	return []FormatExtractor{
		NewJSONExtractor(cfg, client),
		NewISO19115Extractor(cfg, client),
		NewJSONLDExtractor(cfg, client),
		NewTurtleExtractor(cfg, client),
	}
}
