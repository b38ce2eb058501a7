package refund

import "time"

// CreateRequestBody opens a refund request on one of the caller's finished
// transactions.
type CreateRequestBody struct {
	Reason string `json:"reason" validate:"required"`
}

// ResolveRequest records the admin decision.
type ResolveRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// RequestResponse is a stored refund request.
type RequestResponse struct {
	TransactionID int64     `json:"transaction_id"`
	Reason        string    `json:"reason"`
	Status        *bool     `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PendingResponse is one unresolved request with its transaction and job
// context, as the admin review screen needs it.
type PendingResponse struct {
	TransactionID    int64     `json:"transaction_id"`
	Buyer            string    `json:"buyer"`
	Seller           string    `json:"seller"`
	JobName          string    `json:"job_name"`
	JobType          string    `json:"job_type"`
	JobDescription   string    `json:"job_description"`
	Price            int64     `json:"price"`
	PriceDescription string    `json:"price_description"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}
