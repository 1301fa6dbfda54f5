package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brightpath/course-scheduler/internal/dto"
	appErrors "github.com/brightpath/course-scheduler/pkg/errors"
)

// catalogCache is the subset of CacheRepository the catalog client depends
// on, so it can be faked in tests without a real Redis connection.
type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogClientConfig configures the outbound catalog fetch.
type CatalogClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	CacheReads bool
}

// CatalogClient fetches course offerings from the upstream catalog service,
// mirroring the Django-backed `reqwest::Client` GET against
// `materia__nombre__in` that the original schedule generator issued, with an
// optional Redis-backed read-through cache layered on top.
type CatalogClient struct {
	http   *http.Client
	cache  catalogCache
	config CatalogClientConfig
	logger *zap.Logger
}

// NewCatalogClient constructs a CatalogClient. cache may be nil, in which
// case every fetch goes straight to the upstream service.
func NewCatalogClient(cache catalogCache, config CatalogClientConfig, logger *zap.Logger) *CatalogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CatalogClient{
		http:   &http.Client{Timeout: timeout},
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// FetchOfferings retrieves every offering whose subject name is in subjects.
// When subjects is empty the upstream query param is omitted entirely,
// matching the original `if !req_body.courses.is_empty()` guard, so the
// catalog is free to interpret an absent filter as "return everything".
func (c *CatalogClient) FetchOfferings(ctx context.Context, subjects []string) ([]dto.CatalogOffering, error) {
	cacheKey := catalogCacheKey(subjects)

	if c.config.CacheReads && c.cache != nil {
		var cached []dto.CatalogOffering
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			c.logger.Debug("catalog cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	offerings, err := c.fetch(ctx, subjects)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		ttl := c.config.CacheTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := c.cache.Set(ctx, cacheKey, offerings, ttl); err != nil {
			c.logger.Warn("catalog cache write failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	return offerings, nil
}

func (c *CatalogClient) fetch(ctx context.Context, subjects []string) ([]dto.CatalogOffering, error) {
	reqURL, err := c.buildURL(subjects)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogFetch.Code, appErrors.ErrCatalogFetch.Status, appErrors.ErrCatalogFetch.Message)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogFetch.Code, appErrors.ErrCatalogFetch.Status, appErrors.ErrCatalogFetch.Message)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("catalog fetch failed", zap.Error(err), zap.String("url", reqURL))
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogFetch.Code, appErrors.ErrCatalogFetch.Status, appErrors.ErrCatalogFetch.Message)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogFetch.Code, appErrors.ErrCatalogFetch.Status, appErrors.ErrCatalogFetch.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("catalog returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("url", reqURL),
		)
		wrapErr := fmt.Errorf("catalog responded %d", resp.StatusCode)
		return nil, appErrors.Wrap(wrapErr, appErrors.ErrCatalogFetch.Code, appErrors.ErrCatalogFetch.Status, appErrors.ErrCatalogFetch.Message)
	}

	var offerings []dto.CatalogOffering
	if err := json.Unmarshal(body, &offerings); err != nil {
		c.logger.Error("catalog payload decode failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogParse.Code, appErrors.ErrCatalogParse.Status, appErrors.ErrCatalogParse.Message)
	}

	return offerings, nil
}

func (c *CatalogClient) buildURL(subjects []string) (string, error) {
	base := c.config.BaseURL
	if base == "" {
		base = "http://web:8000/api/cursos/"
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse catalog base url: %w", err)
	}

	if len(subjects) > 0 {
		q := parsed.Query()
		q.Set("materia__nombre__in", strings.Join(subjects, ","))
		parsed.RawQuery = q.Encode()
	}

	return parsed.String(), nil
}

// catalogCacheKey produces a stable cache key regardless of the order the
// caller supplied subjects in.
func catalogCacheKey(subjects []string) string {
	sorted := append([]string(nil), subjects...)
	sort.Strings(sorted)
	return "catalog:offerings:" + strings.Join(sorted, ",")
}
