package transaction

import "time"

// PurchaseRequest buys one job at one of its advertised price tiers.
type PurchaseRequest struct {
	JobID int64 `json:"job_id" validate:"required,gt=0"`
	Price int64 `json:"price" validate:"required,gt=0"`
}

// FinishRequest marks a transaction finished. The password is re-checked
// because finishing releases the refund clock.
type FinishRequest struct {
	Password string `json:"password" validate:"required"`
}

// ReviewRequest attaches the buyer's review.
type ReviewRequest struct {
	Review string `json:"review" validate:"required"`
}

// SellerResponse identifies the seller of a purchased job.
type SellerResponse struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// RefundResponse is the refund request attached to a transaction, if any.
type RefundResponse struct {
	Reason    string    `json:"reason"`
	Status    *bool     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DetailResponse is one transaction with job and seller context.
type DetailResponse struct {
	ID               int64           `json:"id"`
	Price            int64           `json:"price"`
	PriceDescription string          `json:"price_description"`
	JobID            int64           `json:"job_id"`
	JobName          string          `json:"job_name"`
	JobDescription   string          `json:"job_description"`
	Seller           SellerResponse  `json:"seller"`
	Review           *string         `json:"review"`
	IsFinished       bool            `json:"is_finished"`
	CreatedAt        time.Time       `json:"created_at"`
	FinishedAt       *time.Time      `json:"finished_at"`
	Refund           *RefundResponse `json:"refund"`
}

// CreatedResponse is the receipt for a fresh purchase.
type CreatedResponse struct {
	ID    int64 `json:"id"`
	JobID int64 `json:"job_id"`
	Price int64 `json:"price"`
}
