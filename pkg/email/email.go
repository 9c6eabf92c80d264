package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/sahilrao/billforge/internal/domain/entity"
)

// Mailer sends estimate emails with PDF attachments over SMTP. Credentials
// come from the business settings row so the operator can change them without
// a restart.
type Mailer struct {
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a new estimate mailer
func NewMailer() *Mailer {
	return &Mailer{sendMail: smtp.SendMail}
}

// SendEstimate emails the rendered estimate PDF to the given recipient. The
// subject and body default to the standard templates when left empty.
func (m *Mailer) SendEstimate(settings *entity.BusinessSettings, estimate *entity.Estimate, pdfData []byte, toEmail, subject, body string) error {
	if !settings.EmailConfigured() {
		return fmt.Errorf("email settings are not configured")
	}
	if toEmail == "" {
		return fmt.Errorf("no recipient email address provided")
	}

	if subject == "" {
		subject = fmt.Sprintf("Estimate %s from %s", estimate.Number, settings.BusinessName)
	}
	if body == "" {
		body = defaultBody(settings, estimate)
	}

	filename := fmt.Sprintf("%s.pdf", estimate.Number)
	msg, err := buildMessage(*settings.SMTPUsername, toEmail, subject, body, filename, pdfData)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	return m.send(settings, toEmail, msg)
}

// SendTest sends a plain test email to verify the SMTP configuration.
func (m *Mailer) SendTest(settings *entity.BusinessSettings, toEmail string) error {
	if !settings.EmailConfigured() {
		return fmt.Errorf("email settings are not configured")
	}

	subject := fmt.Sprintf("Test Email from %s", settings.BusinessName)
	body := fmt.Sprintf("This is a test email from %s.\n\nIf you received this email, your email configuration is working correctly!\n", settings.BusinessName)

	msg, err := buildMessage(*settings.SMTPUsername, toEmail, subject, body, "", nil)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	return m.send(settings, toEmail, msg)
}

func (m *Mailer) send(settings *entity.BusinessSettings, to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", *settings.SMTPServer, settings.SMTPPort)
	auth := smtp.PlainAuth("", *settings.SMTPUsername, *settings.SMTPPassword, *settings.SMTPServer)

	if err := m.sendMail(addr, auth, *settings.SMTPUsername, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage assembles a MIME message: a plain-text body, plus an optional
// base64-encoded PDF attachment.
func buildMessage(from, to, subject, body, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	buf.WriteString("\r\n")

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	if len(attachment) > 0 {
		pdfPart, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
		})
		if err != nil {
			return nil, err
		}

		encoded := base64.StdEncoding.EncodeToString(attachment)
		// RFC 2045 line length limit.
		for len(encoded) > 76 {
			if _, err := fmt.Fprintf(pdfPart, "%s\r\n", encoded[:76]); err != nil {
				return nil, err
			}
			encoded = encoded[76:]
		}
		if _, err := fmt.Fprintf(pdfPart, "%s\r\n", encoded); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func defaultBody(settings *entity.BusinessSettings, estimate *entity.Estimate) string {
	due := "on receipt"
	if estimate.DueDate != nil {
		due = estimate.DueDate.Format("2006-01-02")
	}

	return fmt.Sprintf(`Dear %s,

Thank you for your business! Please find attached estimate %s.

Estimate Details:
- Number: %s
- Date: %s
- Due Date: %s
- Amount: %s%s

If you have any questions regarding this estimate, please don't hesitate to contact us.

Best regards,
%s
`,
		estimate.CustomerName,
		estimate.Number,
		estimate.Number,
		estimate.Date.Format("2006-01-02"),
		due,
		settings.CurrencySymbol,
		estimate.GrandTotal.StringFixed(2),
		settings.BusinessName,
	)
}
