package service

import (
	"context"

	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
)

// SendEmailCode requests a one-time code for an email address. The address
// does not need to belong to a voter yet; the same code path serves both
// login and signup.
func (s *Service) SendEmailCode(ctx context.Context, email string, meta models.RequestMeta) error {
	ctx, span := s.tracer.Start(ctx, "voter.SendEmailCode")
	defer span.End()

	return s.codes.Send(ctx, models.ChannelEmail, email, meta)
}

// SendPhoneCode requests a one-time code for a phone number.
func (s *Service) SendPhoneCode(ctx context.Context, phone string, meta models.RequestMeta) error {
	ctx, span := s.tracer.Start(ctx, "voter.SendPhoneCode")
	defer span.End()

	return s.codes.Send(ctx, models.ChannelPhone, phone, meta)
}

// CheckEmailAvailability reports whether an email is free to register.
func (s *Service) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "voter.CheckEmailAvailability")
	defer span.End()

	_, err := s.findByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if dErrors.HasCode(err, dErrors.CodeUserNotFound) {
		return true, nil
	}
	return false, err
}
