package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/job"
	"github.com/huanvu/gigmart/pkg/domain/refund"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
)

// Machine-readable error codes returned in ProblemDetails.Code.
const (
	CodeNoUser            = "NO_USER"
	CodeNoWallet          = "NO_WALLET"
	CodeNoJob             = "NO_JOB"
	CodeNoTransaction     = "NO_TRANSACTION"
	CodeNoRequest         = "NO_REQUEST"
	CodeWrongPassword     = "WRONG_PASSWORD"
	CodeUnauthorised      = "UNAUTHORISED"
	CodeNotAllowed        = "NOT_ALLOWED"
	CodeAlreadyActivated  = "ALREADY_ACTIVATED"
	CodeWalletInactive    = "WALLET_INACTIVE"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidInfo       = "INVALID_INFO"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeWindowExpired     = "WINDOW_EXPIRED"
	CodeInternal          = "INTERNAL"
)

type errorClass struct {
	status int
	code   string
}

// Order matters only for readability; sentinels do not overlap.
var errorClasses = []struct {
	err   error
	class errorClass
}{
	{account.ErrNoUser, errorClass{fiber.StatusNotFound, CodeNoUser}},
	{account.ErrWrongPassword, errorClass{fiber.StatusUnauthorized, CodeWrongPassword}},
	{account.ErrInvalidInfo, errorClass{fiber.StatusBadRequest, CodeInvalidInfo}},

	{wallet.ErrNoWallet, errorClass{fiber.StatusNotFound, CodeNoWallet}},
	{wallet.ErrAlreadyActivated, errorClass{fiber.StatusMethodNotAllowed, CodeAlreadyActivated}},
	{wallet.ErrInsufficientFunds, errorClass{fiber.StatusBadRequest, CodeInsufficientFunds}},
	{wallet.ErrInvalidAmount, errorClass{fiber.StatusBadRequest, CodeInvalidAmount}},

	{job.ErrNoJob, errorClass{fiber.StatusNotFound, CodeNoJob}},
	{job.ErrNotOwner, errorClass{fiber.StatusUnauthorized, CodeNotAllowed}},
	{job.ErrApproved, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{job.ErrWalletInactive, errorClass{fiber.StatusMethodNotAllowed, CodeWalletInactive}},
	{job.ErrNoPriceTiers, errorClass{fiber.StatusBadRequest, CodeInvalidInfo}},

	{transaction.ErrNoTransaction, errorClass{fiber.StatusNotFound, CodeNoTransaction}},
	{transaction.ErrNotBuyer, errorClass{fiber.StatusUnauthorized, CodeUnauthorised}},
	{transaction.ErrSelfPurchase, errorClass{fiber.StatusBadRequest, CodeNotAllowed}},
	{transaction.ErrNotApproved, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{transaction.ErrNoPriceTier, errorClass{fiber.StatusBadRequest, CodeInvalidPrice}},
	{transaction.ErrAlreadyFinished, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{transaction.ErrNotFinished, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{transaction.ErrAlreadyReviewed, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},

	{refund.ErrNoRequest, errorClass{fiber.StatusNotFound, CodeNoRequest}},
	{refund.ErrAlreadyRequested, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{refund.ErrAlreadyResolved, errorClass{fiber.StatusMethodNotAllowed, CodeNotAllowed}},
	{refund.ErrWindowExpired, errorClass{fiber.StatusMethodNotAllowed, CodeWindowExpired}},
}

// ClassifyError maps a domain error to an HTTP status and machine code.
// Unrecognized errors are reported as internal.
func ClassifyError(err error) (int, string) {
	for _, entry := range errorClasses {
		if errors.Is(err, entry.err) {
			return entry.class.status, entry.class.code
		}
	}
	return fiber.StatusInternalServerError, CodeInternal
}
