package job

import "time"

// PriceTierPayload is one purchasable (price, description) option.
type PriceTierPayload struct {
	Price       int64  `json:"price" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

// CreateRequest posts a new listing. It enters the catalog pending admin
// review.
type CreateRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description" validate:"required"`
	TypeID      int64              `json:"type_id" validate:"required,gt=0"`
	CVURL       string             `json:"cv_url" validate:"omitempty,url"`
	PriceTiers  []PriceTierPayload `json:"price_tiers" validate:"required,min=1,dive"`
}

// UpdateRequest patches a pending listing. Nil fields are left untouched;
// a non-nil tier list replaces the tiers wholesale.
type UpdateRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	TypeID      *int64             `json:"type_id"`
	CVURL       *string            `json:"cv_url"`
	PriceTiers  []PriceTierPayload `json:"price_tiers" validate:"omitempty,min=1,dive"`
}

// ReviewRequest records the admin approval decision.
type ReviewRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// PriceTierResponse mirrors PriceTierPayload on the way out.
type PriceTierResponse struct {
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// Response is one listing with uploader, type and tier context.
type Response struct {
	ID          int64               `json:"id"`
	Username    string              `json:"username"`
	Fullname    string              `json:"fullname"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	TypeID      int64               `json:"type_id"`
	TypeName    string              `json:"type_name"`
	CVURL       string              `json:"cv_url,omitempty"`
	Status      *bool               `json:"status"`
	PriceTiers  []PriceTierResponse `json:"price_tiers"`
	CreatedAt   time.Time           `json:"created_at"`
}

// TypeResponse is one job category.
type TypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
