// Package transaction exposes purchases and the transaction lifecycle over
// HTTP.
package transaction

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	domaintx "github.com/huanvu/gigmart/pkg/domain/transaction"
	"github.com/huanvu/gigmart/pkg/middleware"
	authsvc "github.com/huanvu/gigmart/pkg/service/auth"
	txsvc "github.com/huanvu/gigmart/pkg/service/transaction"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the transaction endpoints. All of them require a token.
//
//   - GET  /api/transaction            : list own transactions
//   - GET  /api/transaction/:id        : one own transaction
//   - POST /api/transaction            : purchase a job
//   - POST /api/transaction/:id/finish : mark finished (password re-check)
//   - POST /api/transaction/:id/review : add a review
func Routes(app *fiber.App, txSvc *txsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/transaction", protected, List(txSvc))
	app.Get("/api/transaction/:id", protected, Find(txSvc))
	app.Post("/api/transaction", protected, Purchase(txSvc))
	app.Post("/api/transaction/:id/finish", protected, Finish(txSvc, authSvc))
	app.Post("/api/transaction/:id/review", protected, Review(txSvc))
}

// List returns all of the caller's transactions, newest first.
// @Summary List own transactions
// @Tags transaction
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/transaction [get]
// @Security Bearer
func List(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		details, err := svc.FindAll(c.UserContext(), username)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		out := make([]DetailResponse, 0, len(details))
		for i := range details {
			out = append(out, toDetail(&details[i]))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", out)
	}
}

// Find returns one of the caller's transactions.
// @Summary Get one own transaction
// @Tags transaction
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transaction/{id} [get]
// @Security Bearer
func Find(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := parseID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		d, err := svc.FindByID(c.UserContext(), username, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", toDetail(d))
	}
}

// Purchase settles a job purchase: the buyer pays the seller and the
// transaction is recorded, atomically.
// @Summary Purchase a job
// @Tags transaction
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Job and price tier"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails "Insufficient funds or bad tier"
// @Router /api/transaction [post]
// @Security Bearer
func Purchase(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[PurchaseRequest](c)
		if input == nil {
			return err
		}
		t, err := svc.Purchase(c.UserContext(), username, input.JobID, input.Price)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Purchase failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Purchase successful", CreatedResponse{
			ID:    t.ID,
			JobID: t.JobID,
			Price: t.Price,
		})
	}
}

// Finish marks a transaction finished, exactly once. The account password
// is verified again before the switch flips.
// @Summary Mark a transaction finished
// @Tags transaction
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body FinishRequest true "Password"
// @Success 200 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Already finished"
// @Router /api/transaction/{id}/finish [post]
// @Security Bearer
func Finish(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := parseID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[FinishRequest](c)
		if input == nil {
			return err
		}
		if err := authSvc.VerifyPassword(c.UserContext(), username, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Password check failed", err)
		}
		if err := svc.MarkFinished(c.UserContext(), username, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark finished", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction finished", nil)
	}
}

// Review attaches the buyer's review to a finished transaction.
// @Summary Review a finished transaction
// @Tags transaction
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body ReviewRequest true "Review text"
// @Success 200 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Not finished or already reviewed"
// @Router /api/transaction/{id}/review [post]
// @Security Bearer
func Review(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := parseID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ReviewRequest](c)
		if input == nil {
			return err
		}
		if err := svc.AddReview(c.UserContext(), username, id, input.Review); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add review", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Review added", nil)
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func toDetail(d *domaintx.Detail) DetailResponse {
	out := DetailResponse{
		ID:               d.ID,
		Price:            d.Price,
		PriceDescription: d.PriceDescription,
		JobID:            d.JobID,
		JobName:          d.JobName,
		JobDescription:   d.JobDescription,
		Seller:           SellerResponse{Username: d.Seller.Username, Fullname: d.Seller.Fullname},
		Review:           d.Review,
		IsFinished:       d.IsFinished,
		CreatedAt:        d.CreatedAt,
		FinishedAt:       d.FinishedAt,
	}
	if d.Refund != nil {
		out.Refund = &RefundResponse{
			Reason:    d.Refund.Reason,
			Status:    d.Refund.Status,
			CreatedAt: d.Refund.CreatedAt,
		}
	}
	return out
}
