package contact

import (
	"context"

	"github.com/peasmarket/storefront/pkg/logger"
)

// Message is one contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Service receives contact form submissions. They are logged for follow-up;
// nothing is stored.
type Service struct {
	logg *logger.Logger
}

func NewService(logg *logger.Logger) *Service {
	return &Service{logg: logg}
}

func (s *Service) Submit(ctx context.Context, msg Message) (string, error) {
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"name":  msg.Name,
			"email": msg.Email,
		})
		s.logg.Info(logCtx, "contact.submitted")
	}
	return "Thank you for your message! We will get back to you soon.", nil
}
