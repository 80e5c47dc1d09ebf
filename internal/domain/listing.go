package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// Listing is one internship posting as reported by the remote API.
// Fields beyond ID are carried through unchanged for display in the
// notification email; Raw keeps the full decoded item for the digest.
type Listing struct {
	ID           string
	Title        string
	Organization string
	Link         string
	PostedAt     string
	Deadline     string
	Raw          map[string]any
}

var idKeys = []string{"id", "_id", "internship_id"}
var titleKeys = []string{"title", "name", "position"}
var orgKeys = []string{"company", "organization", "org", "employer"}
var linkKeys = []string{"url", "link", "job_url", "application_url"}
var postedKeys = []string{"posted_at", "created_at", "date"}
var deadlineKeys = []string{"apply_by", "deadline", "last_date"}

// FromRaw maps one decoded API item onto a Listing. The source is loose
// about field names, so every field is resolved through a list of known
// aliases. siteBase is used to absolutize slug-only links.
func FromRaw(item map[string]any, siteBase string) Listing {
	l := Listing{Raw: item}

	l.Title = firstString(item, titleKeys)
	if l.Title == "" {
		l.Title = "Internship"
	}
	l.Organization = firstString(item, orgKeys)
	l.Link = inferLink(item, siteBase)
	l.PostedAt = firstString(item, postedKeys)
	l.Deadline = firstString(item, deadlineKeys)

	l.ID = firstString(item, idKeys)
	if l.ID == "" {
		// No stable id from the source; hash title+link instead.
		sum := sha1.Sum([]byte(l.Title + "|" + l.Link))
		l.ID = hex.EncodeToString(sum[:])
	}
	return l
}

func inferLink(item map[string]any, siteBase string) string {
	if u := firstString(item, linkKeys); u != "" {
		return u
	}
	slug := firstString(item, []string{"slug", "path"})
	if slug != "" && siteBase != "" {
		if base, err := url.Parse(siteBase); err == nil {
			if ref, err := url.Parse(slug); err == nil {
				return base.ResolveReference(ref).String()
			}
		}
	}
	if siteBase != "" {
		return strings.TrimRight(siteBase, "/") + "/internships"
	}
	return ""
}

func firstString(item map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			// json numbers; ids are often numeric
			if t == float64(int64(t)) {
				return fmt.Sprintf("%d", int64(t))
			}
			return fmt.Sprintf("%v", t)
		case bool:
			// not a usable value for any of our fields
		}
	}
	return ""
}
