package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"coworking/internal/config"
	"coworking/internal/domain"
	"coworking/internal/metrics"
	"coworking/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxErrorBody = 4 << 10

// Client calls the coworking backend REST API. The origin and the credential
// provider are injected; nothing is read from globals.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials domain.CredentialProvider
	limiter     *rateLimiter
	logger      *zerolog.Logger

	cache    domain.Cache
	cacheTTL time.Duration
}

// NewClient constructs a client from the api config section.
func NewClient(cfg config.APIConfig, credentials domain.CredentialProvider, logger *zerolog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = models.DefaultRequestTimeout
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		credentials: credentials,
		limiter:     newRateLimiter(cfg.RateLimit),
		logger:      logger,
	}
}

// UseCache configures optional caching of the public room listing.
func (c *Client) UseCache(cache domain.Cache, ttl time.Duration) {
	c.cache = cache
	c.cacheTTL = ttl
}

// request describes one backend call.
type request struct {
	op          string
	method      string
	path        string
	protected   bool
	body        []byte
	contentType string
	// expect pins the success status; zero accepts any 2xx.
	expect int
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.cache == nil || c.cacheTTL <= 0 {
		return false
	}
	found, err := c.cache.Get(ctx, key, out)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return found
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, val, c.cacheTTL); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *Client) invalidate(ctx context.Context, keys ...string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (c *Client) doGet(ctx context.Context, op, path string, protected bool, out any) error {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, protected: protected})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) doPostJSON(ctx context.Context, op, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		protected:   true,
		body:        data,
		contentType: "application/json",
	})
}

// multipartField is a text part; file parts come from photo.
type multipartField struct {
	name  string
	value string
}

func (c *Client) doMultipart(ctx context.Context, op, method, path string, fields []multipartField, photo *models.Photo) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return err
		}
	}
	if photo != nil {
		name := photo.FileName
		if name == "" {
			name = "photo"
		}
		part, err := w.CreateFormFile("photo", name)
		if err != nil {
			return err
		}
		if _, err := part.Write(photo.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	_, err := c.do(ctx, request{
		op:          op,
		method:      method,
		path:        path,
		protected:   true,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	})
	return err
}

func (c *Client) doDelete(ctx context.Context, op, path string, expect int) error {
	_, err := c.do(ctx, request{op: op, method: http.MethodDelete, path: path, protected: true, expect: expect})
	return err
}

func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var token string
	if r.protected {
		if c.credentials == nil {
			return nil, fmt.Errorf("%s: %w", r.op, ErrNoCredential)
		}
		t, err := c.credentials.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.op, err)
		}
		token = t
	}

	if err := c.limiter.wait(ctx, r.op); err != nil {
		return nil, &NetworkError{Op: r.op, Err: err}
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncRequest(r.op, metrics.OutcomeNetwork)
		c.logger.Warn().Err(err).Str("op", r.op).Str("request_id", requestID).Msg("backend call failed")
		return nil, &NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncRequest(r.op, metrics.OutcomeNetwork)
		return nil, &NetworkError{Op: r.op, Err: err}
	}

	logEvent := c.logger.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if r.expect != 0 {
		ok = resp.StatusCode == r.expect
	}
	if !ok {
		metrics.IncRequest(r.op, metrics.OutcomeRejected)
		logEvent.Msg("backend rejected request")
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &ServerError{Op: r.op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	metrics.IncRequest(r.op, metrics.OutcomeSuccess)
	logEvent.Msg("backend call")
	return data, nil
}
