// Package webapi assembles the HTTP application: one sub-package per
// domain, shared response helpers in common.
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/huanvu/gigmart/pkg/config"
	accountsvc "github.com/huanvu/gigmart/pkg/service/account"
	authsvc "github.com/huanvu/gigmart/pkg/service/auth"
	jobsvc "github.com/huanvu/gigmart/pkg/service/job"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
	refundsvc "github.com/huanvu/gigmart/pkg/service/refund"
	salessvc "github.com/huanvu/gigmart/pkg/service/sales"
	txsvc "github.com/huanvu/gigmart/pkg/service/transaction"
	walletsvc "github.com/huanvu/gigmart/pkg/service/wallet"
	accountweb "github.com/huanvu/gigmart/webapi/account"
	"github.com/huanvu/gigmart/webapi/common"
	jobweb "github.com/huanvu/gigmart/webapi/job"
	notificationweb "github.com/huanvu/gigmart/webapi/notification"
	refundweb "github.com/huanvu/gigmart/webapi/refund"
	salesweb "github.com/huanvu/gigmart/webapi/sales"
	transactionweb "github.com/huanvu/gigmart/webapi/transaction"
	walletweb "github.com/huanvu/gigmart/webapi/wallet"
)

// SetupApp builds the Fiber application: constructs the services from the
// shared dependencies and registers every route group.
func SetupApp(deps *config.Deps) *fiber.App {
	cfg := deps.Config

	accountSvc := accountsvc.New(deps.Uow, deps.Logger)
	authSvc := authsvc.New(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	walletSvc := walletsvc.New(deps.Uow, deps.Logger)
	notificationSvc := notificationsvc.New(deps.Uow, deps.Logger)
	transactionSvc := txsvc.New(deps.Uow, deps.Logger)
	refundSvc := refundsvc.New(deps.Uow, notificationSvc, deps.Logger)
	jobSvc := jobsvc.New(deps.Uow, notificationSvc, deps.Logger)
	salesSvc := salessvc.New(deps.Sales, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return common.ProblemDetailsJSON(c, "Request failed", nil, e.Message, e.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Behind a proxy the client address lives in X-Forwarded-For.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if i := strings.Index(forwardedFor, ","); i != -1 {
					return strings.TrimSpace(forwardedFor[:i])
				}
				return forwardedFor
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("gigmart is up")
	})

	accountweb.Routes(app, accountSvc, authSvc)
	walletweb.Routes(app, walletSvc, authSvc, cfg)
	transactionweb.Routes(app, transactionSvc, authSvc, cfg)
	refundweb.Routes(app, refundSvc, cfg)
	jobweb.Routes(app, jobSvc, cfg)
	notificationweb.Routes(app, notificationSvc, cfg)
	salesweb.Routes(app, salesSvc, cfg)

	return app
}
