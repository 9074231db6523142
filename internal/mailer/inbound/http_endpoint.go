package inbound

import (
	"github.com/putrafajarh/mailgate/internal/mailer/usecase"
	"github.com/putrafajarh/mailgate/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// SendEmail dispatches a transactional email through the configured provider.
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	receipt, err := h.uc.SendEmail(r.Context(), usecase.SendEmailInput{
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
		From:    req.From,
	})
	if err != nil {
		return nil, err
	}

	return SendEmailResponse{
		MessageID: receipt.MessageID,
		Message:   "Email sent successfully",
	}, nil
}
