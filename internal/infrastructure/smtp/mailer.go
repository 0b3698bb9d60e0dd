// Package smtp implements the session.Notifier port over an authenticated
// SMTP relay.
package smtp

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"cms_backend/internal/feature/session"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host        string // relay host name
	Port        int    // relay port (587 for STARTTLS, 465 for SMTPS)
	Username    string
	Password    string
	UseTLS      bool // true: STARTTLS, false: implicit TLS
	SenderEmail string
	SenderName  string // display name on the From header
}

// LoadConfig loads SMTP configuration from environment variables.
func LoadConfig() Config {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	senderName := os.Getenv("SMTP_SENDER_NAME")
	if senderName == "" {
		senderName = "CMS System"
	}
	return Config{
		Host:        os.Getenv("SMTP_HOST"),
		Port:        port,
		Username:    os.Getenv("SMTP_USERNAME"),
		Password:    os.Getenv("SMTP_PASSWORD"),
		UseTLS:      os.Getenv("SMTP_USE_TLS") != "false",
		SenderEmail: os.Getenv("SMTP_SENDER_EMAIL"),
		SenderName:  senderName,
	}
}

// Mailer はウェルカムメールとパスワード再発行メールをSMTPリレー経由で
// 送信します。送信はブロッキングで、リトライは行いません。失敗の扱いは
// 呼び出し側（セッションコントローラ）に委ねます。
type Mailer struct {
	cfg Config
}

// Mailer が session.Notifier を実装していることをコンパイル時に検証します。
var _ session.Notifier = (*Mailer)(nil)

// NewMailer は指定された設定で Mailer の新しいインスタンスを生成します。
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendWelcomeEmail は登録完了メールを送信します。
func (m *Mailer) SendWelcomeEmail(_ context.Context, email, fullName string, customerID uint) error {
	subject := "Welcome to Enterprise CMS"
	text := fmt.Sprintf(
		"Dear %s,\n\nYour account (#%d) has been created successfully.\n"+
			"You can now sign in with your email address.\n\nBest regards,\n%s",
		fullName, customerID, m.cfg.SenderName)
	html := fmt.Sprintf(
		"<html><body><p>Dear %s,</p>"+
			"<p>Your account (#%d) has been created successfully.<br>"+
			"You can now sign in with your email address.</p>"+
			"<p>Best regards,<br>%s</p></body></html>",
		fullName, customerID, m.cfg.SenderName)
	return m.send(email, subject, text, html)
}

// SendPasswordResetEmail は仮パスワードを記載した再発行メールを送信します。
// 仮パスワードは本文にのみ載せ、ログには残しません。
func (m *Mailer) SendPasswordResetEmail(_ context.Context, email, tempPassword, fullName string) error {
	subject := "Your temporary password"
	text := fmt.Sprintf(
		"Dear %s,\n\nYour password has been reset. Your temporary password is:\n\n"+
			"    %s\n\nPlease sign in and change it immediately.\n\nBest regards,\n%s",
		fullName, tempPassword, m.cfg.SenderName)
	html := fmt.Sprintf(
		"<html><body><p>Dear %s,</p>"+
			"<p>Your password has been reset. Your temporary password is:</p>"+
			"<p><strong>%s</strong></p>"+
			"<p>Please sign in and change it immediately.</p>"+
			"<p>Best regards,<br>%s</p></body></html>",
		fullName, tempPassword, m.cfg.SenderName)
	return m.send(email, subject, text, html)
}

func (m *Mailer) send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SenderEmail, m.cfg.SenderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	// UseTLS は STARTTLS（587番ポート）、それ以外は SMTPS（465番ポート）
	d.SSL = !m.cfg.UseTLS

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
