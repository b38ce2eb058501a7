// Package account exposes registration, login and public profiles over
// HTTP.
package account

import (
	"github.com/gofiber/fiber/v2"
	domainaccount "github.com/huanvu/gigmart/pkg/domain/account"
	accountsvc "github.com/huanvu/gigmart/pkg/service/account"
	authsvc "github.com/huanvu/gigmart/pkg/service/auth"
	"github.com/huanvu/gigmart/webapi/common"
)

// Routes registers the account endpoints.
//
//   - POST /api/account            : register a new account
//   - POST /api/account/login      : log in, returns a JWT
//   - GET  /api/account/:username  : public profile
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service) {
	app.Post("/api/account", Register(accountSvc))
	app.Post("/api/account/login", Login(authSvc))
	app.Get("/api/account/:username", Profile(accountSvc))
}

// Register creates a new account.
// @Summary Register a new account
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration info"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/account [post]
func Register(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Register(c.UserContext(),
			input.Username, input.Fullname, input.Password, input.Email, input.Phone)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toProfile(a))
	}
}

// Login checks the credentials and issues a JWT.
// @Summary Log in
// @Tags account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/account/login [post]
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		token, a, err := svc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged in", LoginResponse{
			Token:   token,
			Account: toProfile(a),
		})
	}
}

// Profile returns the public profile for a username.
// @Summary Get a public profile
// @Tags account
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/account/{username} [get]
func Profile(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Find(c.UserContext(), c.Params("username"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", toProfile(a))
	}
}

func toProfile(a *domainaccount.Account) ProfileResponse {
	return ProfileResponse{
		Username:  a.Username,
		Fullname:  a.Fullname,
		Email:     a.Email,
		Phone:     a.Phone,
		HasWallet: a.HasWallet(),
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}
