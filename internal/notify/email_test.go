package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

func TestSubject(t *testing.T) {
	one := []domain.Listing{{ID: "1", Title: "QA Intern"}}
	assert.Equal(t, "New VTU Internship: QA Intern", Subject(one))

	three := []domain.Listing{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	assert.Equal(t, "New VTU Internships: 3 new", Subject(three))
}

func TestDigestListsEveryListingInOrder(t *testing.T) {
	listings := []domain.Listing{
		{ID: "1", Title: "QA Intern", Organization: "Acme", Link: "https://x.test/1", Deadline: "2026-09-15"},
		{ID: "2", Title: "Data Intern", Link: "https://x.test/2", PostedAt: "2026-08-20"},
	}

	body := Digest(listings)

	assert.Contains(t, body, "2 new internship listing(s)")
	assert.Contains(t, body, "QA Intern @ Acme")
	assert.Contains(t, body, "apply by: 2026-09-15")
	assert.Contains(t, body, "Data Intern")
	assert.Contains(t, body, "posted: 2026-08-20")
	assert.Contains(t, body, "https://x.test/2")

	require.Less(t, strings.Index(body, "QA Intern"), strings.Index(body, "Data Intern"))
}

func TestDigestOmitsEmptyFields(t *testing.T) {
	body := Digest([]domain.Listing{{ID: "1", Title: "Bare"}})
	assert.NotContains(t, body, "posted:")
	assert.NotContains(t, body, "apply by:")
	assert.NotContains(t, body, "@")
}

func TestMailerRejectsEmptyBatch(t *testing.T) {
	m := NewMailer(Config{Host: "smtp.example.test", Port: 587}, "pw")
	assert.Error(t, m.Notify(context.Background(), nil))
}

func TestLogOnlyAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, LogOnly{}.Notify(context.Background(), []domain.Listing{{ID: "1", Title: "X"}}))
}
