package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/notice"
)

// NoticeHandler expone los avisos (toasts) generados por el asistente.
type NoticeHandler struct {
	feed *notice.Feed
}

// NewNoticeHandler construye el handler.
func NewNoticeHandler(feed *notice.Feed) *NoticeHandler {
	return &NoticeHandler{feed: feed}
}

// List avisos retenidos, del más antiguo al más reciente.
// GET /api/notices
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.feed.List())
}

// Drain devuelve los avisos y los descarta.
// DELETE /api/notices
func (h *NoticeHandler) Drain(c *fiber.Ctx) error {
	return c.JSON(h.feed.Drain())
}
