package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

// pageCeiling caps the pagination loop even when max_pages is
// misconfigured, so a source that never signals completion cannot
// turn one run into an unbounded crawl.
const pageCeiling = 200

type Config struct {
	BaseURL  string
	SiteBase string
	MaxPages int
	Timeout  time.Duration
	Debug    bool
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *HostLimiter
}

func New(cfg Config, limiter *HostLimiter) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// FetchAll walks the listings API page by page, starting at 1, and
// returns every listing in fetch order. It stops on the first empty
// page, on a source-declared last page, or at the page cap. Any
// transport or decode failure aborts the whole fetch; partial results
// are never returned.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	maxPages := c.cfg.MaxPages
	if maxPages <= 0 || maxPages > pageCeiling {
		maxPages = pageCeiling
	}

	seen := map[string]bool{}
	var out []domain.Listing

	for page := 1; page <= maxPages; page++ {
		payload, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		items := extractItems(payload)
		if c.cfg.Debug {
			log.Printf("[fetch] page %d -> %d items", page, len(items))
		}
		if len(items) == 0 {
			break
		}

		for _, it := range items {
			l := domain.FromRaw(it, c.cfg.SiteBase)
			// the source sometimes repeats listings across page
			// boundaries; first occurrence wins
			if seen[l.ID] {
				continue
			}
			seen[l.ID] = true
			out = append(out, l)
		}

		if last, ok := declaredLastPage(payload); ok && page >= last {
			break
		}
	}

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (any, error) {
	url := pageURL(c.cfg.BaseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "vtu-watcher/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listings get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("listings status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("listings read: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("listings decode: %w body=%s", err, truncate(string(data), 240))
	}
	return payload, nil
}

func pageURL(base string, page int) string {
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s?page=%d", strings.TrimRight(base, "/"), page)
}

// declaredLastPage digs a last_page field out of the common wrapper
// shapes. Absent or malformed means the empty-page rule decides.
func declaredLastPage(payload any) (int, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, probe := range []map[string]any{m, subMap(m, "meta"), subMap(m, "data")} {
		if probe == nil {
			continue
		}
		if n, ok := probe["last_page"].(float64); ok && n >= 1 {
			return int(n), true
		}
	}
	return 0, false
}

func subMap(m map[string]any, key string) map[string]any {
	sub, _ := m[key].(map[string]any)
	return sub
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
