package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"gutterbook/models"
)

// SMTPDispatcher is the production Dispatcher, sending over plain SMTP.
type SMTPDispatcher struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

// NewSMTPDispatcher constructs an SMTPDispatcher.
func NewSMTPDispatcher(host string, port int, user, pass, from, adminEmail string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer:     gomail.NewDialer(host, port, user, pass),
		from:       from,
		adminEmail: adminEmail,
	}
}

func (d *SMTPDispatcher) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (d *SMTPDispatcher) BookingConfirmed(ctx context.Context, b *models.Booking) error {
	customerBody := fmt.Sprintf(
		"Hi %s,\n\nYour %s booking is confirmed for %s, %s.\nAddress: %s, %s, %s\nTotal paid: £%.2f\n\nThank you!",
		b.CustomerName, b.Service, b.Date, b.Window,
		b.FirstLineOfAddress, b.Town, b.Postcode, b.TotalPrice,
	)
	if err := d.send(b.Email, "Booking confirmed", customerBody); err != nil {
		return err
	}

	staffBody := fmt.Sprintf(
		"New confirmed booking %s\n%s, %s\nCustomer: %s (%s, %s)\nService: %s\nTotal: £%.2f",
		b.ID, b.Date, b.Window, b.CustomerName, b.Email, b.ContactNumber, b.Service, b.TotalPrice,
	)
	return d.send(d.adminEmail, "New booking: "+b.Date+" "+b.Window, staffBody)
}

func (d *SMTPDispatcher) RefundProcessed(ctx context.Context, b *models.Booking) error {
	customerBody := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s, %s has been refunded (£%.2f, ref %s).\nReason: %s",
		b.CustomerName, b.Date, b.Window, b.RefundAmount, b.RefundID, b.RefundReason,
	)
	if err := d.send(b.Email, "Booking refunded", customerBody); err != nil {
		return err
	}

	staffBody := fmt.Sprintf(
		"Refund processed for booking %s (%s, %s): £%.2f, ref %s",
		b.ID, b.Date, b.Window, b.RefundAmount, b.RefundID,
	)
	return d.send(d.adminEmail, "Refund processed: "+b.ID, staffBody)
}
