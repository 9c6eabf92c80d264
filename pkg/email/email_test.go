package email

import (
	"net/smtp"
	"testing"
	"time"

	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func testSettings() *entity.BusinessSettings {
	return &entity.BusinessSettings{
		BusinessName:   "Test Business",
		CurrencySymbol: "₹",
		SMTPServer:     strptr("smtp.example.com"),
		SMTPPort:       587,
		SMTPUsername:   strptr("billing@example.com"),
		SMTPPassword:   strptr("secret"),
	}
}

func testEstimate() *entity.Estimate {
	return &entity.Estimate{
		Number:       "EST-0001",
		CustomerName: "Alex Traders",
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		GrandTotal:   decimal.NewFromFloat(318.6),
	}
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("from@example.com", "to@example.com", "Subject line", "Hello", "EST-0001.pdf", []byte("%PDF-1.4 fake content"))
	require.NoError(t, err)

	s := string(msg)
	assert.Contains(t, s, "From: from@example.com\r\n")
	assert.Contains(t, s, "To: to@example.com\r\n")
	assert.Contains(t, s, "Subject: Subject line\r\n")
	assert.Contains(t, s, "Content-Type: multipart/mixed")
	assert.Contains(t, s, "Content-Type: application/pdf")
	assert.Contains(t, s, "Content-Transfer-Encoding: base64")
	assert.Contains(t, s, `attachment; filename="EST-0001.pdf"`)
	assert.Contains(t, s, "Hello")
}

func TestBuildMessageWithoutAttachment(t *testing.T) {
	msg, err := buildMessage("from@example.com", "to@example.com", "Test", "Body only", "", nil)
	require.NoError(t, err)

	s := string(msg)
	assert.NotContains(t, s, "application/pdf")
	assert.Contains(t, s, "Body only")
}

func TestSendEstimate(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	mailer := &Mailer{
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr = addr
			gotFrom = from
			gotTo = to
			gotMsg = msg
			return nil
		},
	}

	err := mailer.SendEstimate(testSettings(), testEstimate(), []byte("%PDF"), "alex@example.com", "", "")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "billing@example.com", gotFrom)
	assert.Equal(t, []string{"alex@example.com"}, gotTo)

	s := string(gotMsg)
	assert.Contains(t, s, "Subject: Estimate EST-0001 from Test Business")
	assert.Contains(t, s, "Dear Alex Traders")
	assert.Contains(t, s, "EST-0001.pdf")
}

func TestSendEstimateUnconfigured(t *testing.T) {
	mailer := NewMailer()
	settings := testSettings()
	settings.SMTPServer = nil

	err := mailer.SendEstimate(settings, testEstimate(), []byte("%PDF"), "alex@example.com", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendEstimateNoRecipient(t *testing.T) {
	mailer := NewMailer()

	err := mailer.SendEstimate(testSettings(), testEstimate(), []byte("%PDF"), "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestSendTest(t *testing.T) {
	var gotMsg []byte
	mailer := &Mailer{
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotMsg = msg
			return nil
		},
	}

	require.NoError(t, mailer.SendTest(testSettings(), "alex@example.com"))
	assert.Contains(t, string(gotMsg), "Subject: Test Email from Test Business")
}
