package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"github.com/Monika-msk/vtu-watcher/internal/domain"
)

type Config struct {
	Host     string
	Port     int
	Username string
	To       string
}

// Mailer sends the run's digest over SMTP with STARTTLS.
type Mailer struct {
	cfg      Config
	password string
}

func NewMailer(cfg Config, password string) *Mailer {
	return &Mailer{cfg: cfg, password: password}
}

// Notify sends one email covering every new listing. Callers must not
// invoke it with an empty batch; a nothing-new run sends nothing.
func (m *Mailer) Notify(ctx context.Context, listings []domain.Listing) error {
	if len(listings) == 0 {
		return fmt.Errorf("notify called with empty batch")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(Subject(listings))
	msg.SetBodyString(mail.TypeTextPlain, Digest(listings))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	log.Printf("[notify] email sent: %s", Subject(listings))
	return nil
}

func Subject(listings []domain.Listing) string {
	if len(listings) == 1 {
		return "New VTU Internship: " + listings[0].Title
	}
	return fmt.Sprintf("New VTU Internships: %d new", len(listings))
}

// Digest renders the plain-text body, one block per listing, in fetch
// order.
func Digest(listings []domain.Listing) string {
	body := fmt.Sprintf("%d new internship listing(s):\n", len(listings))
	for _, l := range listings {
		body += "\n" + l.Title
		if l.Organization != "" {
			body += " @ " + l.Organization
		}
		body += "\n"
		if l.PostedAt != "" {
			body += "  posted: " + l.PostedAt + "\n"
		}
		if l.Deadline != "" {
			body += "  apply by: " + l.Deadline + "\n"
		}
		if l.Link != "" {
			body += "  " + l.Link + "\n"
		}
	}
	return body
}

// LogOnly stands in for the Mailer when email is not configured or the
// run is a dry run: new listings are logged and the run proceeds, which
// is also what the old script did.
type LogOnly struct{}

func (LogOnly) Notify(_ context.Context, listings []domain.Listing) error {
	for _, l := range listings {
		log.Printf("[notify] new: %s %s", l.Title, l.Link)
	}
	log.Printf("[notify] email not configured; %d listing(s) logged only", len(listings))
	return nil
}
