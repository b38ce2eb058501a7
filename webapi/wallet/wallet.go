// Package wallet exposes wallet activation, balance, top-up and ledger
// history over HTTP.
package wallet

import (
	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/middleware"
	authsvc "github.com/huanvu/gigmart/pkg/service/auth"
	walletsvc "github.com/huanvu/gigmart/pkg/service/wallet"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the wallet endpoints. All of them require a token.
//
//   - GET  /api/wallet          : current balance
//   - POST /api/wallet/activate : activate the wallet, once
//   - POST /api/wallet          : top up (password re-check)
//   - GET  /api/wallet/history  : signed ledger history
func Routes(app *fiber.App, walletSvc *walletsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/wallet", protected, Balance(walletSvc))
	app.Post("/api/wallet/activate", protected, Activate(walletSvc))
	app.Post("/api/wallet", protected, TopUp(walletSvc, authSvc))
	app.Get("/api/wallet/history", protected, History(walletSvc))
}

// Balance returns the caller's wallet balance.
// @Summary Get wallet balance
// @Tags wallet
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/wallet [get]
// @Security Bearer
func Balance(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		balance, err := svc.Balance(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance", BalanceResponse{Balance: balance})
	}
}

// Activate creates the caller's wallet. A wallet can be activated exactly
// once.
// @Summary Activate wallet
// @Tags wallet
// @Produce json
// @Success 201 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Already activated"
// @Router /api/wallet/activate [post]
// @Security Bearer
func Activate(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		walletID, err := svc.Activate(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to activate wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Wallet activated", BalanceResponse{
			WalletID: walletID,
			Balance:  0,
		})
	}
}

// TopUp credits the caller's wallet. The account password must be supplied
// again and is verified before any money moves.
// @Summary Top up wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body TopUpRequest true "Amount and password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails "Wrong password"
// @Router /api/wallet [post]
// @Security Bearer
func TopUp(svc *walletsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[TopUpRequest](c)
		if input == nil {
			return err
		}
		if err := authSvc.VerifyPassword(c.UserContext(), username, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Password check failed", err)
		}
		balance, err := svc.TopUp(c.UserContext(), username, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to top up", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Top up successful", BalanceResponse{Balance: balance})
	}
}

// History returns the caller's ledger entries, newest first.
// @Summary Get wallet history
// @Tags wallet
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/wallet/history [get]
// @Security Bearer
func History(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		items, err := svc.History(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get history", err)
		}
		out := make([]HistoryItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, HistoryItemResponse{
				ID:        item.EntryID,
				Amount:    item.Amount,
				Content:   item.Content,
				CreatedAt: item.CreatedAt,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History", out)
	}
}
