// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	texttemplate "text/template"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/checkout"
	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
	"github.com/javajoker/soundwave/internal/utils"
)

// Notifier is what the checkout and contact flows need from the mailer.
type Notifier interface {
	SendOrderConfirmation(order *models.Order) error
	SendContactMessage(form checkout.ContactForm) error
	SendNewsletterWelcome(email string) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	config   config.EmailConfig
	frontend string
	log      logrus.FieldLogger
	send     sendMailFunc
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config, log logrus.FieldLogger) *NotificationService {
	return &NotificationService{
		config:   cfg.Email,
		frontend: cfg.Frontend.BaseURL,
		log:      log.WithField("component", "notifications"),
		send:     smtp.SendMail,
	}
}

func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	if order.Email == "" {
		return nil
	}

	data := map[string]interface{}{
		"OrderID":  order.ID.String(),
		"Items":    order.Items,
		"Subtotal": pricing.Format(order.Subtotal),
		"Shipping": pricing.Format(order.Shipping),
		"Tax":      pricing.Format(order.Tax),
		"Total":    pricing.Format(order.Total),
		"OrderURL": fmt.Sprintf("%s/orders/%s", s.frontend, order.ID),
		"Name":     order.ShippingAddress["firstName"],
	}

	return s.deliver(order.Email, "order_confirmation", data)
}

func (s *NotificationService) SendContactMessage(form checkout.ContactForm) error {
	data := map[string]interface{}{
		"Name":    form.Name,
		"Email":   form.Email,
		"Subject": form.Subject,
		"Message": form.Message,
	}

	return s.deliver(s.config.ContactInbox, "contact_message", data)
}

func (s *NotificationService) SendNewsletterWelcome(email string) error {
	return s.deliver(email, "newsletter_welcome", map[string]interface{}{"ShopURL": s.frontend})
}

func (s *NotificationService) deliver(to, templateType string, data map[string]interface{}) error {
	tmpl := s.getEmailTemplate(templateType)

	subject, err := renderSubject(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	log := s.log.WithFields(logrus.Fields{"to_hash": utils.HashString(to)[:12], "subject": subject})

	if s.config.SMTPHost == "" {
		log.Info("SMTP not configured, email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)
	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, msg); err != nil {
		log.WithError(err).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Debug("Email sent")
	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Subjects are plain text headers, so they skip HTML escaping.
func renderSubject(subject string, data interface{}) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Your SoundWave order {{.OrderID}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thanks for your order{{if .Name}}, {{.Name}}{{end}}!</h2>
	<table>
		{{range .Items}}<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td><td>${{.UnitPrice.StringFixed 2}}</td></tr>{{end}}
	</table>
	<p>Subtotal: ${{.Subtotal}}<br>Shipping: ${{.Shipping}}<br>Tax: ${{.Tax}}<br><strong>Total: ${{.Total}}</strong></p>
	<a href="{{.OrderURL}}">View your order</a>
	<p>Keep the music playing,<br>SoundWave</p>
</body>
</html>`,
		},
		"contact_message": {
			Subject: "[Contact] {{.Subject}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; wrote:</p>
	<p>{{.Message}}</p>
</body>
</html>`,
		},
		"newsletter_welcome": {
			Subject: "Welcome to the SoundWave newsletter",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>You're on the list!</h2>
	<p>New arrivals, studio tips and vinyl drops, straight to your inbox.</p>
	<a href="{{.ShopURL}}">Visit the shop</a>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	return EmailTemplate{
		Subject: "SoundWave",
		Body:    "<p>{{.Message}}</p>",
	}
}
