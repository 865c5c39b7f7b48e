// Package mail sends the admin a notification when a visitor submits
// an inquiry. Delivery is best-effort: callers fire it in the
// background and only log failures.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
)

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	AdminEmail string
}

type Notifier struct {
	cfg Config
}

func NewNotifier(cfg Config) *Notifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Notifier{cfg: cfg}
}

// Enabled reports whether SMTP is configured. Safe on a nil receiver
// so a disabled notifier needs no special casing.
func (n *Notifier) Enabled() bool {
	return n != nil && n.cfg.Host != "" && n.cfg.AdminEmail != ""
}

func (n *Notifier) NotifyInquiry(inq db.Inquiry) error {
	subject := fmt.Sprintf("New inquiry: %s", inq.Subject)
	body := inquiryBody(inq)

	from := n.cfg.From
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.From)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", n.cfg.AdminEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	return smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.AdminEmail}, []byte(msg.String()))
}

func inquiryBody(inq db.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", inq.Name)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	if inq.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s %s\n", inq.CountryCode, inq.Phone)
	}
	if inq.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", inq.Company)
	}
	if inq.ServiceType != "" {
		fmt.Fprintf(&b, "Service: %s\n", inq.ServiceType)
	}
	fmt.Fprintf(&b, "Urgency: %s\n", inq.UrgencyLevel)
	fmt.Fprintf(&b, "Received: %s\n\n", inq.CreatedAt.In(clock.Location).Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Subject: %s\n\n%s\n", inq.Subject, inq.Message)
	return b.String()
}
