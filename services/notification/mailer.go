package notification

import (
	"context"
	"fmt"

	"slotwise/config"

	"gopkg.in/gomail.v2"
)

// OTPMailer emails a completion code.
type OTPMailer interface {
	SendOTP(ctx context.Context, address string, code int) error
}

// SMTPMailer sends OTP emails through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, address string, code int) error {
	if address == "" {
		return fmt.Errorf("SendOTP: no email address")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", address)
	msg.SetHeader("Subject", "Your job completion code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"A booking was confirmed.\n\nYour completion code is %06d. Enter it in the app when the job is done.\n", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("SendOTP: failed to send email: %w", err)
	}
	return nil
}
