package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

func TestHydrateFillsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<meta property="og:site_name" content="Acme Labs">
<link rel="canonical" href="https://vtu.internyet.in/internships/qa-intern">
</head><body><h1>  QA&nbsp;Intern </h1></body></html>`)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{}, nil)
	l := domain.Listing{ID: "1", Title: "Internship", Link: srv.URL + "/internships/qa-intern"}

	require.NoError(t, c.Hydrate(context.Background(), &l))
	assert.Equal(t, "QA Intern", l.Title)
	assert.Equal(t, "Acme Labs", l.Organization)
	assert.Equal(t, "https://vtu.internyet.in/internships/qa-intern", l.Link)
}

func TestHydrateKeepsRealTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Page Heading</h1></body></html>`)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{}, nil)
	l := domain.Listing{ID: "1", Title: "Real Title", Link: srv.URL}

	require.NoError(t, c.Hydrate(context.Background(), &l))
	assert.Equal(t, "Real Title", l.Title)
}

func TestHydrateNoLinkIsNoop(t *testing.T) {
	c := New(Config{}, nil)
	l := domain.Listing{ID: "1", Title: "Internship"}
	require.NoError(t, c.Hydrate(context.Background(), &l))
	assert.Equal(t, "Internship", l.Title)
}

func TestHydrateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{}, nil)
	l := domain.Listing{ID: "1", Link: srv.URL}
	assert.Error(t, c.Hydrate(context.Background(), &l))
}
