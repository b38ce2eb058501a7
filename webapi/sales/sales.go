// Package sales exposes the admin sales rollup over HTTP.
package sales

import (
	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	domainsales "github.com/huanvu/gigmart/pkg/domain/sales"
	"github.com/huanvu/gigmart/pkg/middleware"
	salessvc "github.com/huanvu/gigmart/pkg/service/sales"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the sales endpoints.
//
//   - GET /api/sales/summary : per-day or per-month sales rollup (admin)
func Routes(app *fiber.App, svc *salessvc.Service, cfg *config.App) {
	app.Get("/api/sales/summary",
		middleware.JwtProtected(cfg.Auth.Jwt), middleware.AdminRequired(), Summary(svc))
}

// Summary returns sales totals of finished, non-refunded transactions for
// the last count periods, split by job type. Empty periods are zero-filled.
// @Summary Sales rollup
// @Tags sales
// @Produce json
// @Param count query int false "Number of periods, default 7"
// @Param bucket query string false "day or month, default day"
// @Success 200 {object} common.Response
// @Router /api/sales/summary [get]
// @Security Bearer
func Summary(svc *salessvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bucket := domainsales.Bucket(c.Query("bucket", string(domainsales.ByDay)))
		periods, err := svc.Summary(c.UserContext(), c.QueryInt("count"), bucket)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to summarize sales", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sales summary", periods)
	}
}
