package services

import (
	"fmt"
	"net/smtp"

	"github.com/retailnet/orders-api/app/utils/format"
	"github.com/shopspring/decimal"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

func BuildOrderPlacedEmailBody(orderID string, total decimal.Decimal) string {
	return fmt.Sprintf(`
        <html>
        <body>
            <h2>Order received</h2>
            <p>Your order <b>%s</b> has been placed and is awaiting confirmation.</p>
            <p>Order total: <b>%s</b></p>
        </body>
        </html>`, orderID, format.Money(total))
}

func BuildCatalogImportedEmailBody(result *ImportResult) string {
	return fmt.Sprintf(`
        <html>
        <body>
            <h2>Price list processed</h2>
            <p>Catalog for <b>%s</b> has been replaced:</p>
            <ul>
                <li>Categories: %d</li>
                <li>Listings: %d</li>
                <li>Parameter values: %d</li>
            </ul>
        </body>
        </html>`, result.Shop, result.Categories, result.Products, result.Parameters)
}
