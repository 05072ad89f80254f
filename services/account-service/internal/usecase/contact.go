package usecase

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/cashflower/shared/mailer"
)

// ContactUsecase relays contact form submissions to the support inbox.
type ContactUsecase interface {
	SendContactMessage(ctx context.Context, params ContactParams) error
}

// ContactParams is a contact form submission.
type ContactParams struct {
	Name    string
	Email   string
	Message string
}

type contactUsecase struct {
	mailer mailer.Sender
	inbox  string
}

func NewContactUsecase(mailer mailer.Sender, inbox string) ContactUsecase {
	return &contactUsecase{
		mailer: mailer,
		inbox:  inbox,
	}
}

func (u *contactUsecase) SendContactMessage(ctx context.Context, params ContactParams) error {
	body := fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", params.Name, params.Email, params.Message)

	if err := u.mailer.Send(ctx, mailer.Email{
		To:      []string{u.inbox},
		ReplyTo: params.Email,
		Subject: "New Contact Form Submission",
		Body:    body,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	return nil
}
