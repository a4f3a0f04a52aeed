package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventbook/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService creates an EmailService backed by the given mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
		logger:   logger,
	}
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	subject, html, text, err := s.renderer.Render("booking_confirmation", data)
	if err != nil {
		return fmt.Errorf("render booking confirmation: %w", err)
	}
	if err := s.mailer.Send(data.ParticipantEmail, subject, html, text); err != nil {
		return fmt.Errorf("send booking confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "booking confirmation sent", slog.String("to", data.ParticipantEmail))
	return nil
}
