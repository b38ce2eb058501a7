// Package job exposes the listing catalog, uploader updates and admin
// review over HTTP.
package job

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/config"
	domainjob "github.com/huanvu/gigmart/pkg/domain/job"
	"github.com/huanvu/gigmart/pkg/middleware"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	jobsvc "github.com/huanvu/gigmart/pkg/service/job"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the job endpoints. The static /pending route must come
// before /:id.
//
//   - GET   /api/job             : browse approved listings
//   - GET   /api/job/pending     : listings awaiting review (admin)
//   - GET   /api/job/:id         : one listing
//   - POST  /api/job             : post a listing
//   - PATCH /api/job/:id         : update an own pending listing
//   - POST  /api/job/:id/approve : approve or reject (admin)
//   - GET   /api/job-type        : job categories
func Routes(app *fiber.App, jobSvc *jobsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/job", List(jobSvc))
	app.Get("/api/job/pending", protected, middleware.AdminRequired(), ListPending(jobSvc))
	app.Get("/api/job/:id", Find(jobSvc))
	app.Post("/api/job", protected, Create(jobSvc))
	app.Patch("/api/job/:id", protected, Update(jobSvc))
	app.Post("/api/job/:id/approve", protected, middleware.AdminRequired(), Review(jobSvc))
	app.Get("/api/job-type", ListTypes(jobSvc))
}

// List returns a page of approved listings, optionally filtered.
// @Summary Browse approved listings
// @Tags job
// @Produce json
// @Param page query int false "Page, 1-based"
// @Param size query int false "Page size, -1 for all"
// @Param search query string false "Name search"
// @Param type query int false "Job type ID"
// @Param username query string false "Uploader"
// @Param price_lower query int false "Minimum tier price"
// @Param price_upper query int false "Maximum tier price"
// @Success 200 {object} common.Response
// @Router /api/job [get]
func List(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := listOptions(c)
		opts.ApprovedOnly = true
		jobs, err := svc.List(c.UserContext(), opts)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list jobs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Jobs", toResponses(jobs))
	}
}

// ListPending returns listings still awaiting admin review.
// @Summary List jobs pending review
// @Tags job
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/job/pending [get]
// @Security Bearer
func ListPending(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := listOptions(c)
		opts.ApprovedOnly = false
		jobs, err := svc.List(c.UserContext(), opts)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list pending jobs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pending jobs", toResponses(jobs))
	}
}

// Find returns one listing.
// @Summary Get one listing
// @Tags job
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/job/{id} [get]
func Find(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid job ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		j, err := svc.Find(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Job not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Job", toResponse(j))
	}
}

// Create posts a new listing for the caller.
// @Summary Post a listing
// @Tags job
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Listing"
// @Success 201 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Wallet not activated"
// @Router /api/job [post]
// @Security Bearer
func Create(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		j := &domainjob.Job{
			Username:    username,
			Name:        input.Name,
			Description: input.Description,
			TypeID:      input.TypeID,
			CVURL:       input.CVURL,
			PriceTiers:  toTiers(input.PriceTiers),
		}
		created, err := svc.Create(c.UserContext(), j)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create job", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Job created", toResponse(created))
	}
}

// Update patches one of the caller's pending listings. Any accepted update
// sends the listing back to review.
// @Summary Update an own listing
// @Tags job
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param request body UpdateRequest true "Patch"
// @Success 200 {object} common.Response
// @Failure 405 {object} common.ProblemDetails "Already approved"
// @Router /api/job/{id} [patch]
// @Security Bearer
func Update(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := middleware.CurrentUsername(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid job ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		patch := domainjob.Patch{
			Name:        input.Name,
			Description: input.Description,
			TypeID:      input.TypeID,
			CVURL:       input.CVURL,
		}
		if input.PriceTiers != nil {
			patch.PriceTiers = toTiers(input.PriceTiers)
		}
		if err := svc.Update(c.UserContext(), username, id, patch); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update job", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Job updated", nil)
	}
}

// Review records the admin decision on a listing.
// @Summary Approve or reject a listing
// @Tags job
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param request body ReviewRequest true "Decision"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/job/{id}/approve [post]
// @Security Bearer
func Review(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid job ID", nil, err.Error(), fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ReviewRequest](c)
		if input == nil {
			return err
		}
		if err := svc.Review(c.UserContext(), id, *input.Approved); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to review job", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Job reviewed", nil)
	}
}

// ListTypes returns the job categories.
// @Summary List job categories
// @Tags job
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/job-type [get]
func ListTypes(svc *jobsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := svc.ListTypes(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list job types", err)
		}
		out := make([]TypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, TypeResponse{ID: t.ID, Name: t.Name})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Job types", out)
	}
}

func listOptions(c *fiber.Ctx) jobrepo.ListOptions {
	return jobrepo.ListOptions{
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", 20),
		Filter: domainjob.Filter{
			Search:     c.Query("search"),
			Username:   c.Query("username"),
			TypeID:     int64(c.QueryInt("type")),
			PriceLower: int64(c.QueryInt("price_lower")),
			PriceUpper: int64(c.QueryInt("price_upper")),
		},
	}
}

func toTiers(payload []PriceTierPayload) []domainjob.PriceTier {
	tiers := make([]domainjob.PriceTier, 0, len(payload))
	for _, p := range payload {
		tiers = append(tiers, domainjob.PriceTier{Price: p.Price, Description: p.Description})
	}
	return tiers
}

func toResponse(j *domainjob.Job) Response {
	tiers := make([]PriceTierResponse, 0, len(j.PriceTiers))
	for _, t := range j.PriceTiers {
		tiers = append(tiers, PriceTierResponse{Price: t.Price, Description: t.Description})
	}
	return Response{
		ID:          j.ID,
		Username:    j.Username,
		Fullname:    j.Fullname,
		Name:        j.Name,
		Description: j.Description,
		TypeID:      j.TypeID,
		TypeName:    j.TypeName,
		CVURL:       j.CVURL,
		Status:      j.Status,
		PriceTiers:  tiers,
		CreatedAt:   j.CreatedAt,
	}
}

func toResponses(jobs []domainjob.Job) []Response {
	out := make([]Response, 0, len(jobs))
	for i := range jobs {
		out = append(out, toResponse(&jobs[i]))
	}
	return out
}
