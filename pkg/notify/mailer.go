package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sw33tLie/freedrops/internal/utils"
)

const (
	DEFAULT_SMTP_HOST      = "smtp.gmail.com"
	DEFAULT_SMTP_PORT      = 587
	DEFAULT_FROM_NAME      = "Free Game Bot"
	DEFAULT_EMAIL_SUBJECT  = "🎁 New Free Games Alert!"
	DEFAULT_MAX_RECIPIENTS = 250
)

// Mailer sends the run summary to every subscriber, one message each.
type Mailer struct {
	Host          string
	Port          int
	Username      string
	Password      string
	FromName      string
	Subject       string
	DashboardURL  string
	MaxRecipients int

	// Recipients lists the addresses to mail when used as a Notifier.
	Recipients func(ctx context.Context) ([]string, error)

	// send is swapped in tests.
	send func(e *email.Email, addr string, a smtp.Auth) error
}

// MailReport counts the outcome of a mailing.
type MailReport struct {
	Sent   int
	Failed int
}

func (m *Mailer) Name() string { return "email" }

// Configured reports whether SMTP credentials were supplied.
func (m *Mailer) Configured() bool {
	return m.Username != "" && m.Password != ""
}

// Send mails msg to the configured recipients. The plain-text part is
// RenderText output; the mailer adds its own dashboard footer.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() || m.Recipients == nil {
		return ErrNotConfigured
	}
	to, err := m.Recipients(ctx)
	if err != nil {
		return fmt.Errorf("listing recipients: %w", err)
	}
	if m.DashboardURL != "" {
		msg.DashboardURL = ""
	}
	report, err := m.deliver(ctx, to, m.textBody(RenderText(msg)), m.htmlBody(RenderHTML(msg)))
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d emails failed", report.Failed, report.Failed+report.Sent)
	}
	return nil
}

// SendSummary mails summaryHTML to each recipient. A failed recipient is
// counted and skipped; only a cancelled context stops the loop.
func (m *Mailer) SendSummary(ctx context.Context, recipients []string, summaryHTML string) (MailReport, error) {
	if !m.Configured() {
		return MailReport{}, ErrNotConfigured
	}
	summaryHTML = strings.TrimSpace(summaryHTML)
	if summaryHTML == "" {
		return MailReport{}, errors.New("empty summary")
	}
	return m.deliver(ctx, recipients, m.textBody(StripHTML(summaryHTML)), m.htmlBody(summaryHTML))
}

func (m *Mailer) deliver(ctx context.Context, recipients []string, textBody, htmlBody string) (MailReport, error) {
	var report MailReport
	if !m.Configured() {
		return report, ErrNotConfigured
	}

	max := m.MaxRecipients
	if max <= 0 {
		max = DEFAULT_MAX_RECIPIENTS
	}
	if len(recipients) > max {
		recipients = recipients[:max]
	}

	host := m.Host
	if host == "" {
		host = DEFAULT_SMTP_HOST
	}
	port := m.Port
	if port == 0 {
		port = DEFAULT_SMTP_PORT
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	auth := smtp.PlainAuth("", m.Username, m.Password, host)

	send := m.send
	if send == nil {
		send = func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) }
	}

	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		mail := m.newEmail(to, textBody, htmlBody)
		if err := send(mail, addr, auth); err != nil {
			utils.Log.Warnf("Failed to mail %s: %v", to, err)
			report.Failed++
			continue
		}
		utils.Log.Debugf("Sent summary to %s", to)
		report.Sent++
	}
	return report, nil
}

func (m *Mailer) newEmail(to, textBody, htmlBody string) *email.Email {
	fromName := m.FromName
	if fromName == "" {
		fromName = DEFAULT_FROM_NAME
	}
	subject := m.Subject
	if subject == "" {
		subject = DEFAULT_EMAIL_SUBJECT
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("%q <%s>", fromName, m.Username)
	mail.To = []string{to}
	mail.Subject = subject
	mail.Text = []byte(textBody)
	mail.HTML = []byte(htmlBody)
	return mail
}

func (m *Mailer) textBody(text string) string {
	if m.DashboardURL != "" {
		text += "\n\nView on dashboard: " + m.DashboardURL
	}
	return text
}

func (m *Mailer) htmlBody(summaryHTML string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Segoe UI,Arial;padding:8px">`)
	b.WriteString(strings.ReplaceAll(summaryHTML, "\n", "<br/>\n"))
	if m.DashboardURL != "" {
		fmt.Fprintf(&b, `<hr/><p><a href="%s">View Dashboard</a></p>`, html.EscapeString(m.DashboardURL))
	}
	b.WriteString(`</div>`)
	return b.String()
}
