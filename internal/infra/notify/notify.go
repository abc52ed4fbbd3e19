package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"smokeysalmons/internal/usecase"
)

// LogNotifierは開発用のメーラー。送信せずに内容をログへ書く。
type LogNotifier struct {
	logger *zap.SugaredLogger
	brand  string
}

func NewLogNotifier(logger *zap.SugaredLogger, brand string) *LogNotifier {
	return &LogNotifier{logger: logger, brand: brand}
}

func (n *LogNotifier) SendOrderConfirmation(ctx context.Context, p usecase.OrderNotification) error {
	n.logger.Infow("email (dev)",
		"to", p.To,
		"subject", fmt.Sprintf("%s order %s", n.brand, p.OrderCode),
		"summary", strings.Join(p.Summary, "; "),
	)
	return nil
}

func (n *LogNotifier) SendAdminAlert(ctx context.Context, p usecase.OrderNotification) error {
	n.logger.Infow("admin email (dev)",
		"to", p.To,
		"subject", fmt.Sprintf("[New Order] %s - %s", p.OrderCode, p.Customer),
		"phone", p.Phone,
		"summary", strings.Join(p.Summary, "; "),
	)
	return nil
}

func (n *LogNotifier) SendPaymentConfirmation(ctx context.Context, p usecase.OrderNotification) error {
	n.logger.Infow("payment email (dev)",
		"to", p.To,
		"subject", fmt.Sprintf("%s payment received for %s", n.brand, p.OrderCode),
		"amount", p.Total.StringFixed(2),
		"method", p.Method,
	)
	return nil
}

// SMTPNotifierはプレーンテキストメールをSMTPで送る
type SMTPNotifier struct {
	addr  string
	from  string
	brand string
}

func NewSMTPNotifier(addr string, from string, brand string) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, from: from, brand: brand}
}

func (n *SMTPNotifier) SendOrderConfirmation(ctx context.Context, p usecase.OrderNotification) error {
	subject := fmt.Sprintf("%s order %s", n.brand, p.OrderCode)
	body := fmt.Sprintf("Thank you for your order %s!\n\n%s\n\nWe will deliver on Friday. If you have questions, reply to this email.",
		p.OrderCode, strings.Join(p.Summary, "\n"))
	return n.send(p.To, subject, body)
}

func (n *SMTPNotifier) SendAdminAlert(ctx context.Context, p usecase.OrderNotification) error {
	subject := fmt.Sprintf("[New Order] %s - %s", p.OrderCode, p.Customer)
	body := fmt.Sprintf("New order %s by %s (%s)\n\n%s",
		p.OrderCode, p.Customer, p.Phone, strings.Join(p.Summary, "\n"))
	return n.send(p.To, subject, body)
}

func (n *SMTPNotifier) SendPaymentConfirmation(ctx context.Context, p usecase.OrderNotification) error {
	subject := fmt.Sprintf("%s payment received for %s", n.brand, p.OrderCode)
	body := fmt.Sprintf("Payment received for order %s.\n\nAmount: %s\nMethod: %s",
		p.OrderCode, p.Total.StringFixed(2), p.Method)
	return n.send(p.To, subject, body)
}

func (n *SMTPNotifier) send(to string, subject string, body string) error {
	if to == "" {
		to = n.from
	}
	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(n.addr, nil, n.from, []string{to}, []byte(msg))
}
