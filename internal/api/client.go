package api

import (
	"bytes"
	"fmt"
	"mime/multipart"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/biotutor/internal/config"
	"github.com/diogo/biotutor/internal/logging"
	"github.com/diogo/biotutor/internal/models"
)

// GatewayInterface is what the UI and commands need from the backend client
type GatewayInterface interface {
	SubmitQuery(text string) (*models.Answer, error)
	SubmitFile(path string) (*models.UploadReceipt, error)
	BaseURL() string
	Close()
}

var _ GatewayInterface = (*Client)(nil)

// Client talks to the tutor backend. It holds no per-request state, so
// concurrent calls do not interact.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	profile    profiles.ClientProfile
	logger     *zap.Logger
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client (mainly for tests)
func WithHTTPClient(hc tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClientProfile sets the TLS fingerprint profile used for https backends
func WithClientProfile(profile profiles.ClientProfile) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// NewClient creates a client for the backend at baseURL.
// Requests never time out and redirects are followed.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := config.NormalizeAPIBase(baseURL)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL: base,
		profile: profiles.Chrome_120,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.logger = logging.OrNop(client.logger)

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(client.profile),
			// 0 means no limit; tls-client otherwise applies 30s
			tls_client.WithTimeoutSeconds(0),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// endpoint joins the base URL and an endpoint path
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// isSuccess reports whether status is in the 2xx range
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// encodeForm builds a multipart body using fill to add the fields
func encodeForm(fill func(w *multipart.Writer) error) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := fill(writer); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}
