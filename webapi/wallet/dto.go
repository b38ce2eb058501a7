package wallet

import "time"

// TopUpRequest is the manual top-up payload. The password is re-checked
// even though the request already carries a valid token.
type TopUpRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Password string `json:"password" validate:"required"`
}

// BalanceResponse is the wallet balance view.
type BalanceResponse struct {
	WalletID int64 `json:"wallet_id,omitempty"`
	Balance  int64 `json:"balance"`
}

// HistoryItemResponse is one signed ledger entry: positive when the wallet
// received funds, negative when it sent them.
type HistoryItemResponse struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
