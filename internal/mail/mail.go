package mail

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

const (
	defaultWorkerInterval = 30 * time.Second
	defaultQueueSize      = 100
	maxAttempts           = 3
)

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	ReplyTo        string        `mapstructure:"reply_to"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	QueueSize      int           `mapstructure:"queue_size"`
}

// Enabled reports whether enough is configured to send anything.
func (c *Config) Enabled() bool {
	return c != nil && c.APIKey != "" && c.FromEmail != ""
}

type templateName string

const rsvpConfirmation templateName = "rsvp_confirmation.gohtml"

var templateSubjects = map[templateName]string{
	rsvpConfirmation: "Your RSVP",
}

type outgoing struct {
	msg      *mail.SGMailV3
	attempts int
}

type Mailer struct {
	cli       dependency.Sender
	from      *mail.Email
	replyTo   *mail.Email
	site      view.Site
	c         *Config
	queue     chan *outgoing
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	templates map[templateName]*template.Template
}

func New(c *Config, site view.Site) (*Mailer, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("incomplete mailer config: from %q, api key set %v", c.FromEmail, c.APIKey != "")
	}
	return newMailer(c, site, sendgrid.NewSendClient(c.APIKey))
}

func newMailer(c *Config, site view.Site, cli dependency.Sender) (*Mailer, error) {
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = defaultWorkerInterval
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	fromName := c.FromName
	if fromName == "" {
		fromName = site.Couple
	}

	m := &Mailer{
		cli:       cli,
		from:      mail.NewEmail(fromName, c.FromEmail),
		site:      site,
		c:         c,
		queue:     make(chan *outgoing, c.QueueSize),
		templates: make(map[templateName]*template.Template),
	}
	if c.ReplyTo != "" {
		m.replyTo = mail.NewEmail(fromName, c.ReplyTo)
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		// embed paths always use forward slashes
		templatePath := filepath.ToSlash(filepath.Join(templateDir, entry.Name()))

		tmpl, err := template.ParseFS(templatesFS, templatePath)
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		m.templates[templateName(entry.Name())] = tmpl
	}

	return nil
}

func (m *Mailer) buildMessage(to *mail.Email, tn templateName, plain string, data any) (*mail.SGMailV3, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	subject, ok := templateSubjects[tn]
	if !ok {
		return nil, fmt.Errorf("subject not found for template: %v", tn)
	}
	if m.site.Couple != "" {
		subject = fmt.Sprintf("%s - %s", subject, m.site.Couple)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	msg := mail.NewSingleEmail(m.from, subject, to, plain, body.String())
	if m.replyTo != nil {
		msg.SetReplyTo(m.replyTo)
	}
	return msg, nil
}

func (m *Mailer) send(ctx context.Context, msg *mail.SGMailV3) error {
	resp, err := m.cli.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.MailApiLimitReached
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("error sending email bad status code: %s, status code: %d", resp.Body, resp.StatusCode)
	}
	return nil
}
