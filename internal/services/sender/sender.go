// Package sender реализует почтовый шлюз сервиса: письмо с подтверждением
// email при регистрации и письма сброса пароля. Отправка синхронная с точки
// зрения вызывающего (ответ клиенту зависит от результата доставки), но
// ограничена таймаутом: зависший SMTP не должен держать запрос бесконечно.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/lib/smtp"
)

// ErrDeliveryFailed доставка письма не удалась или не уложилась в таймаут.
// Повторных попыток нет: для запроса это терминальная ошибка.
var ErrDeliveryFailed = errors.New("email delivery failed")

// SenderService отправляет служебные письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	baseURL   string
	timeout   time.Duration
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, baseURL string, timeout time.Duration, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		baseURL:   baseURL,
		timeout:   timeout,
		log:       log,
	}
}

// SendVerificationEmail отправляет письмо со ссылкой подтверждения email.
// Ссылка содержит username — подтверждение идемпотентно по эффекту.
func (s *SenderService) SendVerificationEmail(ctx context.Context, email, username string) error {
	link := fmt.Sprintf("%s/user/verify/%s", s.baseURL, username)

	subject := "Verify your email"
	bodyText := fmt.Sprintf("Hello, %s!\n\nThank you for signing up."+
		"\nPlease follow the link below to verify your email address:\n\n%s\n\n"+
		"If you did not create an account, you can safely ignore this email.",
		username, link)

	return s.sendWithTimeout(ctx, []string{email}, subject, bodyText)
}

// SendPasswordResetEmail отправляет письмо со ссылкой сброса пароля.
// Код одноразовый и живет ограниченное время.
func (s *SenderService) SendPasswordResetEmail(ctx context.Context, email, username, code string) error {
	link := fmt.Sprintf("%s/user/forgot/%s/%s", s.baseURL, username, code)

	subject := "Reset your password"
	bodyText := fmt.Sprintf("Hello, %s!\n\nYou requested a password reset."+
		"\nFollow the link below to get a new password:\n\n%s\n\n"+
		"The link is valid for a limited time and can be used only once.\n"+
		"If you did not request a reset, ignore this email — your password stays unchanged.",
		username, link)

	return s.sendWithTimeout(ctx, []string{email}, subject, bodyText)
}

// SendTemporaryPassword отправляет пользователю временный пароль,
// выданный при завершении сброса.
func (s *SenderService) SendTemporaryPassword(ctx context.Context, email, username, tempPassword string) error {
	subject := "Your new password"
	bodyText := fmt.Sprintf("Hello, %s!\n\nYour password has been reset."+
		"\nTemporary password: %s\n\nPlease log in and change it right away.",
		username, tempPassword)

	return s.sendWithTimeout(ctx, []string{email}, subject, bodyText)
}

// sendWithTimeout выполняет отправку в отдельной горутине и ждет результат
// не дольше настроенного таймаута. Таймаут считается ошибкой доставки.
func (s *SenderService) sendWithTimeout(ctx context.Context, to []string, subject, bodyText string) error {
	done := make(chan error, 1)
	go func() {
		done <- s.sendEmail(to, subject, bodyText)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, ctx.Err())
	case <-timer.C:
		s.log.Error("email send timed out", slog.String("subject", subject))
		return fmt.Errorf("%w: send timed out after %s", ErrDeliveryFailed, s.timeout)
	}
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
