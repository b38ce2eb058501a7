// Package refund exposes refund requests and their admin resolution over
// HTTP.
package refund

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/middleware"
	refundsvc "github.com/huanvu/gigmart/pkg/service/refund"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the refund endpoints. The id parameter is always the
// transaction id: a transaction has at most one refund request.
//
//   - GET  /api/refund             : pending requests (admin)
//   - POST /api/refund/:id         : open a request
//   - POST /api/refund/:id/approve : resolve a request (admin)
func Routes(app *fiber.App, refundSvc *refundsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/refund", protected, middleware.AdminRequired(), ListPending(refundSvc))
	app.Post("/api/refund/:id", protected, Create(refundSvc))
	app.Post("/api/refund/:id/approve", protected, middleware.AdminRequired(), Resolve(refundSvc))
}

// ListPending returns all unresolved refund requests.
// @Summary List pending refund requests
// @Tags refund
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/refund [get]
// @Security Bearer
func ListPending(svc *refundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pending, err := svc.ListPending(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list refund requests", err)
		}
		out := make([]PendingResponse, 0, len(pending))
		for _, p := range pending {
			out = append(out, PendingResponse{
				TransactionID:    p.TransactionID,
				Buyer:            p.Buyer,
				Seller:           p.Seller,
				JobName:          p.JobName,
				JobType:          p.JobType,
				JobDescription:   p.JobDescription,
				Price:            p.Price,
				PriceDescription: p.PriceDescription,
				Reason:           p.Reason,
				CreatedAt:        p.CreatedAt,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pending refund requests", out)
	}
}

// Create opens a refund request on one of the caller's transactions. The
// transaction must be finished and still inside the refund window.
// @Summary Request a refund
// @Tags refund
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body CreateRequestBody true "Reason"
// @Success 201 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Window expired or already requested"
// @Router /api/refund/{id} [post]
// @Security Bearer
func Create(svc *refundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CreateRequestBody](c)
		if input == nil {
			return err
		}
		req, err := svc.CreateRequest(c.UserContext(), username, id, input.Reason)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to request refund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Refund requested", RequestResponse{
			TransactionID: req.TransactionID,
			Reason:        req.Reason,
			Status:        req.Status,
			CreatedAt:     req.CreatedAt,
		})
	}
}

// Resolve records the admin decision on a pending request. Resolution is
// one-shot; funds are not moved back.
// @Summary Resolve a refund request
// @Tags refund
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body ResolveRequest true "Decision"
// @Success 200 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Already resolved"
// @Router /api/refund/{id}/approve [post]
// @Security Bearer
func Resolve(svc *refundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ResolveRequest](c)
		if input == nil {
			return err
		}
		if err := svc.Resolve(c.UserContext(), id, *input.Approved); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to resolve refund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Refund resolved", nil)
	}
}
