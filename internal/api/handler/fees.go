package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/ledger"
)

// FeeService interface for fee estimation
type FeeService interface {
	Estimate(ctx context.Context) *ledger.Fee
}

// FeeHandler handles fee estimation requests
type FeeHandler struct {
	service FeeService
}

func NewFeeHandler(svc FeeService) *FeeHandler {
	return &FeeHandler{service: svc}
}

// Estimate GET /v1/fees/estimate - current ledger submission cost
func (h *FeeHandler) Estimate(c *fiber.Ctx) error {
	return c.JSON(h.service.Estimate(c.Context()))
}
