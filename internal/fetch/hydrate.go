package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

// Hydrate fetches the listing's public page and backfills fields the
// API left blank or generic. Best effort: callers log and move on.
func (c *Client) Hydrate(ctx context.Context, l *domain.Listing) error {
	if l.Link == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Link, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "vtu-watcher/1.0 (+local)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, l.Link); err != nil {
			return err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("listing page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	if l.Title == "" || l.Title == "Internship" {
		if t := cleanText(doc.Find("h1").First().Text()); t != "" {
			l.Title = t
		} else if t := cleanText(doc.Find("title").First().Text()); t != "" {
			l.Title = t
		}
	}

	if l.Organization == "" {
		if v, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
			l.Organization = cleanText(v)
		}
	}

	// prefer the page's canonical URL over a slug-derived guess
	if v, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if v = strings.TrimSpace(v); v != "" {
			l.Link = v
		}
	}

	return nil
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
