package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/creditcard-api/internal/application/dto"
	"github.com/jhoicas/creditcard-api/internal/application/usecase"
	"github.com/jhoicas/creditcard-api/internal/domain"
)

// CardHandler maneja las peticiones HTTP de emisión y consulta de tarjetas.
type CardHandler struct {
	uc *usecase.CardUseCase
}

// NewCardHandler construye el handler.
func NewCardHandler(uc *usecase.CardUseCase) *CardHandler {
	return &CardHandler{uc: uc}
}

// Create emite una tarjeta para un CPF.
// POST /api/cards
func (h *CardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	card, err := h.uc.RequestCreation(c.Context(), in.TaxID, in.PrintedName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el CPF ya tiene tarjeta"})
		}
		if errors.Is(err, domain.ErrCardRejected) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REJECTED", Message: "tarjeta no aprobada para el CPF"})
		}
		if errors.Is(err, domain.ErrInvalidUpstreamData) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_DATA", Message: "respuesta inconsistente del antifraude"})
		}
		if errors.Is(err, domain.ErrGateway) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: "error comunicándose con sistemas externos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCardResponse(card))
}

// GetByID obtiene una tarjeta por ID.
// GET /api/cards/:id
func (h *CardHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	card, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarjeta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewCardResponse(card))
}
