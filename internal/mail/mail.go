package mail

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

type Template string

const TemplateRecuperacao Template = "recuperacao"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Mailer envia e-mails transacionais.
type Mailer interface {
	Send(ctx context.Context, to, subject string, tmpl Template, data map[string]string) error
}

// ResendMailer envia pela API do Resend.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, to, subject string, tmpl Template, data map[string]string) error {
	body, err := render(tmpl, data)
	if err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	return nil
}

// LogMailer só registra o envio; usado quando não há RESEND_API_KEY.
type LogMailer struct {
	Log *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject string, tmpl Template, data map[string]string) error {
	if _, err := render(tmpl, data); err != nil {
		return err
	}
	log := m.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("email_not_sent", "to", to, "subject", subject, "template", string(tmpl))
	return nil
}

func render(tmpl Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(tmpl)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", tmpl)
	}
	return body.String(), nil
}
