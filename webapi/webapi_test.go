package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanvu/gigmart/internal/fixtures"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/sales"
)

type salesReaderStub struct {
	periods []sales.Period
}

func (s *salesReaderStub) Summary(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
	return s.periods, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *fixtures.MemStore) {
	t.Helper()
	store := fixtures.NewMemStore()
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{},
		Log:       &config.Log{},
		DB:        &config.DB{},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Metrics:   &config.Metrics{},
	}
	deps := &config.Deps{
		Uow: store.UoW(),
		Sales: &salesReaderStub{periods: []sales.Period{
			{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Sum: 60},
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
	}
	return SetupApp(deps), store
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func decodeProblem(t *testing.T, raw []byte) problem {
	t.Helper()
	var p problem
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func register(t *testing.T, app *fiber.App, username string) {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/account", "", fiber.Map{
		"username": username,
		"fullname": username + " Test",
		"password": "secret123",
		"email":    username + "@example.com",
		"phone":    "0123456789",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, raw := doJSON(t, app, "POST", "/api/account/login", "", fiber.Map{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func seedAdmin(t *testing.T, store *fixtures.MemStore) {
	t.Helper()
	admin, err := account.New("admin", "Admin", "secret123", "admin@example.com", "0123456789")
	require.NoError(t, err)
	admin.IsAdmin = true
	store.SeedAccount(admin)
}

// activate + top up for username, returning their token.
func fundedUser(t *testing.T, app *fiber.App, username string, amount int64) string {
	t.Helper()
	register(t, app, username)
	token := login(t, app, username)
	resp, _ := doJSON(t, app, "POST", "/api/wallet/activate", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	if amount > 0 {
		resp, _ = doJSON(t, app, "POST", "/api/wallet", token, fiber.Map{
			"amount":   amount,
			"password": "secret123",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	return token
}

func balanceOf(t *testing.T, app *fiber.App, token string) int64 {
	t.Helper()
	resp, raw := doJSON(t, app, "GET", "/api/wallet", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &data))
	return data.Balance
}

// postJob creates an approved listing for the seller and returns its id.
func postJob(t *testing.T, app *fiber.App, sellerToken, adminToken string) int64 {
	t.Helper()
	resp, raw := doJSON(t, app, "POST", "/api/job", sellerToken, fiber.Map{
		"name":        "Logo design",
		"description": "A custom logo",
		"type_id":     1,
		"price_tiers": []fiber.Map{
			{"price": 60, "description": "one concept"},
			{"price": 150, "description": "three concepts"},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &created))

	resp, _ = doJSON(t, app, "POST", "/api/job/"+fmtInt(created.ID)+"/approve", adminToken, fiber.Map{
		"approved": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return created.ID
}

func fmtInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func TestWalletLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)
	register(t, app, "alice")
	token := login(t, app, "alice")

	// No wallet yet.
	resp, raw := doJSON(t, app, "GET", "/api/wallet", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NO_WALLET", decodeProblem(t, raw).Code)

	resp, _ = doJSON(t, app, "POST", "/api/wallet/activate", token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(0), balanceOf(t, app, token))

	// Activation is one-shot.
	resp, raw = doJSON(t, app, "POST", "/api/wallet/activate", token, nil)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "ALREADY_ACTIVATED", decodeProblem(t, raw).Code)

	// Top-up requires the account password again.
	resp, raw = doJSON(t, app, "POST", "/api/wallet", token, fiber.Map{
		"amount": 100, "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "WRONG_PASSWORD", decodeProblem(t, raw).Code)
	assert.Equal(t, int64(0), balanceOf(t, app, token))

	resp, _ = doJSON(t, app, "POST", "/api/wallet", token, fiber.Map{
		"amount": 100, "password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(100), balanceOf(t, app, token))

	// The ledger shows the credit.
	resp, raw = doJSON(t, app, "GET", "/api/wallet/history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history []struct {
		Amount  int64  `json:"amount"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, int64(100), history[0].Amount)
	assert.Equal(t, "Top up", history[0].Content)
}

func TestPurchaseFlow(t *testing.T) {
	app, store := setupTestApp(t)
	seedAdmin(t, store)
	adminToken := login(t, app, "admin")
	sellerToken := fundedUser(t, app, "seller", 0)
	buyerToken := fundedUser(t, app, "buyer", 100)

	jobID := postJob(t, app, sellerToken, adminToken)

	// Price must match an advertised tier.
	resp, raw := doJSON(t, app, "POST", "/api/transaction", buyerToken, fiber.Map{
		"job_id": jobID, "price": 61,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE", decodeProblem(t, raw).Code)

	resp, raw = doJSON(t, app, "POST", "/api/transaction", buyerToken, fiber.Map{
		"job_id": jobID, "price": 60,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// 100/0 settles to 40/60.
	assert.Equal(t, int64(40), balanceOf(t, app, buyerToken))
	assert.Equal(t, int64(60), balanceOf(t, app, sellerToken))

	// A second 60 purchase exceeds the remaining 40.
	resp, raw = doJSON(t, app, "POST", "/api/transaction", buyerToken, fiber.Map{
		"job_id": jobID, "price": 60,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_FUNDS", decodeProblem(t, raw).Code)
	assert.Equal(t, int64(40), balanceOf(t, app, buyerToken))
	assert.Equal(t, int64(60), balanceOf(t, app, sellerToken))

	// Sellers cannot buy their own listing.
	resp, raw = doJSON(t, app, "POST", "/api/transaction", sellerToken, fiber.Map{
		"job_id": jobID, "price": 60,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NOT_ALLOWED", decodeProblem(t, raw).Code)
}

func TestFinishAndRefundFlow(t *testing.T) {
	app, store := setupTestApp(t)
	seedAdmin(t, store)
	adminToken := login(t, app, "admin")
	sellerToken := fundedUser(t, app, "seller", 0)
	buyerToken := fundedUser(t, app, "buyer", 100)
	jobID := postJob(t, app, sellerToken, adminToken)

	resp, raw := doJSON(t, app, "POST", "/api/transaction", buyerToken, fiber.Map{
		"job_id": jobID, "price": 60,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &created))
	txPath := "/api/transaction/" + fmtInt(created.ID)

	// Refunds need a finished transaction.
	resp, raw = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID), buyerToken, fiber.Map{
		"reason": "changed my mind",
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	// Finishing re-checks the password.
	resp, _ = doJSON(t, app, "POST", txPath+"/finish", buyerToken, fiber.Map{
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", txPath+"/finish", buyerToken, fiber.Map{
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// One-shot.
	resp, raw = doJSON(t, app, "POST", txPath+"/finish", buyerToken, fiber.Map{
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "NOT_ALLOWED", decodeProblem(t, raw).Code)

	resp, _ = doJSON(t, app, "POST", txPath+"/review", buyerToken, fiber.Map{
		"review": "great work",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Freshly finished, well inside the window.
	resp, _ = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID), buyerToken, fiber.Map{
		"reason": "not as described",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Only one request per transaction.
	resp, _ = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID), buyerToken, fiber.Map{
		"reason": "again",
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	// The admin sees it pending.
	resp, raw = doJSON(t, app, "GET", "/api/refund", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pending []struct {
		TransactionID int64  `json:"transaction_id"`
		Buyer         string `json:"buyer"`
		Seller        string `json:"seller"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].TransactionID)
	assert.Equal(t, "buyer", pending[0].Buyer)
	assert.Equal(t, "seller", pending[0].Seller)

	// Resolution is admin-only and one-shot; no funds move back.
	resp, _ = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID)+"/approve", buyerToken, fiber.Map{
		"approved": true,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID)+"/approve", adminToken, fiber.Map{
		"approved": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/refund/"+fmtInt(created.ID)+"/approve", adminToken, fiber.Map{
		"approved": false,
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	assert.Equal(t, int64(40), balanceOf(t, app, buyerToken))
	assert.Equal(t, int64(60), balanceOf(t, app, sellerToken))

	// Both parties were notified about request and resolution.
	resp, raw = doJSON(t, app, "GET", "/api/notification", buyerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var notes []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &notes))
	assert.Len(t, notes, 2)
}

func TestJobValidationAndBrowsing(t *testing.T) {
	app, store := setupTestApp(t)
	seedAdmin(t, store)
	adminToken := login(t, app, "admin")

	register(t, app, "seller")
	sellerToken := login(t, app, "seller")

	// Posting requires an activated wallet.
	resp, raw := doJSON(t, app, "POST", "/api/job", sellerToken, fiber.Map{
		"name":        "Logo design",
		"description": "A custom logo",
		"type_id":     1,
		"price_tiers": []fiber.Map{{"price": 60, "description": "one concept"}},
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "WALLET_INACTIVE", decodeProblem(t, raw).Code)

	resp, _ = doJSON(t, app, "POST", "/api/wallet/activate", sellerToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	jobID := postJob(t, app, sellerToken, adminToken)

	// Approved listings are public.
	resp, raw = doJSON(t, app, "GET", "/api/job", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listings []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, jobID, listings[0].ID)

	// Approved listings are immutable.
	resp, raw = doJSON(t, app, "PATCH", "/api/job/"+fmtInt(jobID), sellerToken, fiber.Map{
		"name": "Too late",
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "NOT_ALLOWED", decodeProblem(t, raw).Code)

	// Job categories are public.
	resp, raw = doJSON(t, app, "GET", "/api/job-type", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var types []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &types))
	assert.NotEmpty(t, types)
}

func TestAuthMiddleware(t *testing.T) {
	app, store := setupTestApp(t)
	seedAdmin(t, store)

	// Missing token.
	resp, _ := doJSON(t, app, "GET", "/api/wallet", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Garbage token.
	resp, _ = doJSON(t, app, "GET", "/api/wallet", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Admin routes reject regular users.
	register(t, app, "alice")
	token := login(t, app, "alice")
	resp, _ = doJSON(t, app, "GET", "/api/refund", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/sales/summary", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	adminToken := login(t, app, "admin")
	resp, raw := doJSON(t, app, "GET", "/api/sales/summary?count=7&bucket=day", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var periods []struct {
		Sum int64 `json:"sum"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &periods))
	require.Len(t, periods, 1)
	assert.Equal(t, int64(60), periods[0].Sum)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, raw := doJSON(t, app, "POST", "/api/account", "", fiber.Map{
		"username": "alice",
		"fullname": "Alice",
		"password": "x",
		"email":    "alice@example.com",
		"phone":    "0123456789",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", decodeProblem(t, raw).Title)
}
