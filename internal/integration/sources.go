package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"pronostico/internal/models"
)

const (
	maxPageBytes   = 5 * 1024 * 1024
	fetchUserAgent = "Mozilla/5.0 (compatible; pronostico/1.0)"
)

type FetchConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"20s"`
	RPM      int           `env:"RPM" envDefault:"30"`
	MaxChars int           `env:"MAX_CHARS" envDefault:"6000"`
}

// SourceFetcher pulls the readable text of a source page so the model sees
// what the URL says, not only the URL.
type SourceFetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxChars int
}

func NewSourceFetcher(cfg FetchConfig) *SourceFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	limit := rate.Inf
	if cfg.RPM > 0 {
		limit = rate.Limit(float64(cfg.RPM) / 60.0)
	}
	return &SourceFetcher{
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
		maxChars: cfg.MaxChars,
	}
}

func (f *SourceFetcher) Fetch(ctx context.Context, rawURL string) (models.SourceExcerpt, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return models.SourceExcerpt{}, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return models.SourceExcerpt{}, fmt.Errorf("unsupported url scheme %q", pageURL.Scheme)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return models.SourceExcerpt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return models.SourceExcerpt{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return models.SourceExcerpt{}, fmt.Errorf("failed to download %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.SourceExcerpt{}, fmt.Errorf("failed to download %s: status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return models.SourceExcerpt{}, fmt.Errorf("failed to extract content from %s: %w", pageURL, err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return models.SourceExcerpt{}, fmt.Errorf("no readable content at %s", pageURL)
	}

	return models.SourceExcerpt{
		URL:   rawURL,
		Title: strings.TrimSpace(article.Title),
		Text:  truncateRunes(text, f.maxChars),
	}, nil
}

// FetchAll fetches every URL in order. Failed URLs are reported in errs and
// left out of the excerpts.
func (f *SourceFetcher) FetchAll(ctx context.Context, urls []string) (excerpts []models.SourceExcerpt, errs []error) {
	for _, u := range urls {
		ex, err := f.Fetch(ctx, u)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		excerpts = append(excerpts, ex)
	}
	return excerpts, errs
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}
