// Package model holds the gorm models backing the persistence layer. The
// schema itself is owned by the SQL migrations; these structs only mirror
// it for query building.
package model

import "time"

// Account mirrors the accounts table.
type Account struct {
	Username  string `gorm:"primaryKey;size:16"`
	Fullname  string
	Password  string
	Email     string `gorm:"uniqueIndex"`
	Phone     string `gorm:"size:10"`
	WalletID  *int64 `gorm:"uniqueIndex"`
	IsAdmin   bool
	CreatedAt time.Time
}

func (Account) TableName() string { return "accounts" }

// Wallet mirrors the wallets table. Balance is guarded by a CHECK
// (balance >= 0) constraint; all writes go through delta updates.
type Wallet struct {
	ID        int64 `gorm:"primaryKey"`
	Balance   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (Wallet) TableName() string { return "wallets" }

// WalletTransaction mirrors the append-only wallet_transactions ledger.
// WalletFrom is null for top-ups.
type WalletTransaction struct {
	ID         int64  `gorm:"primaryKey"`
	WalletFrom *int64 `gorm:"column:wallet_from"`
	WalletTo   int64  `gorm:"column:wallet_to"`
	Amount     int64
	Content    string
	CreatedAt  time.Time
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }

// JobType mirrors the job_types table.
type JobType struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func (JobType) TableName() string { return "job_types" }

// Job mirrors the jobs table. Status: nil pending, true approved, false
// rejected.
type Job struct {
	ID          int64 `gorm:"primaryKey"`
	Username    string
	Name        string
	Description string
	TypeID      int64
	CVURL       string `gorm:"column:cv_url"`
	Status      *bool
	CreatedAt   time.Time
}

func (Job) TableName() string { return "jobs" }

// JobPriceTier mirrors the job_price_tiers table. (JobID, Price) is the
// composite key a transaction references.
type JobPriceTier struct {
	JobID       int64 `gorm:"primaryKey"`
	Price       int64 `gorm:"primaryKey"`
	Description string
}

func (JobPriceTier) TableName() string { return "job_price_tiers" }

// Transaction mirrors the transactions table. Status false = unfinished,
// true = finished.
type Transaction struct {
	ID         int64 `gorm:"primaryKey"`
	Username   string
	JobID      int64
	Price      int64
	Status     bool
	Review     *string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

func (Transaction) TableName() string { return "transactions" }

// RefundRequest mirrors the refund_requests table; TransactionID is the
// primary key, which enforces one request per transaction.
type RefundRequest struct {
	TransactionID int64 `gorm:"primaryKey;autoIncrement:false"`
	Reason        string
	Status        *bool
	CreatedAt     time.Time
}

func (RefundRequest) TableName() string { return "refund_requests" }

// Message mirrors the messages table; notifications are rows with
// username_from = 'system'.
type Message struct {
	ID           int64 `gorm:"primaryKey"`
	UsernameFrom string
	UsernameTo   string
	Content      string
	CreatedAt    time.Time
}

func (Message) TableName() string { return "messages" }
