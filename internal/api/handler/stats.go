package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/service"
)

// StatsService interface for dashboard totals
type StatsService interface {
	Totals(ctx context.Context) (*service.Stats, error)
}

// StatsHandler handles dashboard stats requests
type StatsHandler struct {
	service StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Stats GET /v1/stats - persisted and on-chain totals
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Totals(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
