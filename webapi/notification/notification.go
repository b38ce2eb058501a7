// Package notification exposes the user's system notifications over HTTP.
package notification

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/middleware"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
	"github.com/huanvu/gigmart/webapi/common"
)

// Response is one system notification.
type Response struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Routes registers the notification endpoints.
//
//   - GET /api/notification : list own notifications
func Routes(app *fiber.App, svc *notificationsvc.Service, cfg *config.App) {
	app.Get("/api/notification", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
}

// List returns the caller's notifications, newest first.
// @Summary List own notifications
// @Tags notification
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notification [get]
// @Security Bearer
func List(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		msgs, err := svc.ListForUser(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
		}
		out := make([]Response, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, Response{ID: m.ID, Content: m.Content, CreatedAt: m.CreatedAt})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications", out)
	}
}
