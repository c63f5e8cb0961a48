package contact

import (
	"errors"

	contactsvc "portfolio-backend/internal/application/contact"
	"portfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *contactsvc.Service
}

// Submit POST /api/contact
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var form contactsvc.Form
	if err := c.BodyParser(&form); err != nil {
		return response.Error(c, contactsvc.ErrMissingFields.Error(), fiber.StatusBadRequest)
	}
	err := h.Service.Submit(c.Context(), form)
	switch {
	case err == nil:
		return response.OK(c)
	case errors.Is(err, contactsvc.ErrAuthFailed):
		log.Error().Err(err).Msg("contact: mail relay rejected credentials")
		return response.Error(c, contactsvc.ErrAuthFailed.Error(), fiber.StatusInternalServerError)
	case errors.Is(err, contactsvc.ErrSendFailed):
		log.Error().Err(err).Msg("contact: send failed")
		return response.Error(c, contactsvc.ErrSendFailed.Error(), fiber.StatusInternalServerError)
	}
	return response.FromError(c, err, contactsvc.ErrSendFailed.Error())
}
