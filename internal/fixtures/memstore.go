// Package fixtures provides an in-memory UnitOfWork for tests. It mirrors
// the behavior of the Postgres layer closely enough for service and
// handler tests: not-found sentinels, the one-request-per-transaction
// rule and newest-first ordering.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/job"
	"github.com/huanvu/gigmart/pkg/domain/message"
	"github.com/huanvu/gigmart/pkg/domain/refund"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
	"github.com/huanvu/gigmart/pkg/repository"
	accountrepo "github.com/huanvu/gigmart/pkg/repository/account"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	messagerepo "github.com/huanvu/gigmart/pkg/repository/message"
	refundrepo "github.com/huanvu/gigmart/pkg/repository/refund"
	txrepo "github.com/huanvu/gigmart/pkg/repository/transaction"
	walletrepo "github.com/huanvu/gigmart/pkg/repository/wallet"
)

// MemStore is the shared state behind an in-memory UnitOfWork.
type MemStore struct {
	mu sync.Mutex

	accounts     map[string]*account.Account
	wallets      map[int64]*wallet.Wallet
	entries      []wallet.Entry
	jobs         map[int64]*job.Job
	jobTypes     []job.Type
	transactions map[int64]*transaction.Transaction
	refunds      map[int64]*refund.Request
	messages     []message.Message

	nextWalletID int64
	nextJobID    int64
	nextTxID     int64
	nextEntryID  int64
	nextMsgID    int64
}

// NewMemStore returns an empty store seeded with a few job types.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts:     make(map[string]*account.Account),
		wallets:      make(map[int64]*wallet.Wallet),
		jobs:         make(map[int64]*job.Job),
		transactions: make(map[int64]*transaction.Transaction),
		refunds:      make(map[int64]*refund.Request),
		jobTypes: []job.Type{
			{ID: 1, Name: "Design"},
			{ID: 2, Name: "Writing"},
			{ID: 3, Name: "Programming"},
		},
	}
}

// UoW returns a UnitOfWork over the store. Do calls are serialized with a
// mutex; fn failures leave previously applied writes in place, so tests
// exercising atomicity must rely on services checking before writing, the
// same order the real layer uses.
func (s *MemStore) UoW() repository.UnitOfWork {
	return &memUoW{store: s}
}

// Account returns the stored account, or nil.
func (s *MemStore) Account(username string) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[username]
}

// Balance returns a wallet's balance.
func (s *MemStore) Balance(walletID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wallets[walletID]; ok {
		return w.Balance
	}
	return 0
}

// Entries returns a copy of the ledger.
func (s *MemStore) Entries() []wallet.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wallet.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// SeedAccount stores an account as-is.
func (s *MemStore) SeedAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Username] = a
}

// SeedWallet creates a wallet with the given balance and links it to the
// account.
func (s *MemStore) SeedWallet(username string, balance int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWalletID++
	id := s.nextWalletID
	s.wallets[id] = &wallet.Wallet{ID: id, Balance: balance, CreatedAt: time.Now()}
	if a, ok := s.accounts[username]; ok {
		a.WalletID = &id
	}
	return id
}

// SeedJob stores a job and returns its id.
func (s *MemStore) SeedJob(j *job.Job) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJobID++
	j.ID = s.nextJobID
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	for i := range j.PriceTiers {
		j.PriceTiers[i].JobID = j.ID
	}
	s.jobs[j.ID] = j
	return j.ID
}

// SeedTransaction stores a transaction and returns its id.
func (s *MemStore) SeedTransaction(t *transaction.Transaction) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTxID++
	t.ID = s.nextTxID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.transactions[t.ID] = t
	return t.ID
}

// Notifications returns the system messages sent to username, newest
// first.
func (s *MemStore) Notifications(username string) []message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []message.Message
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.To == username && m.From == message.SystemSender {
			out = append(out, m)
		}
	}
	return out
}

type memUoW struct {
	store *MemStore
}

func (u *memUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *memUoW) Accounts() accountrepo.Repository { return &memAccounts{u.store} }
func (u *memUoW) Wallets() walletrepo.Repository   { return &memWallets{u.store} }
func (u *memUoW) Jobs() jobrepo.Repository         { return &memJobs{u.store} }
func (u *memUoW) Transactions() txrepo.Repository  { return &memTransactions{u.store} }
func (u *memUoW) Refunds() refundrepo.Repository   { return &memRefunds{u.store} }
func (u *memUoW) Messages() messagerepo.Repository { return &memMessages{u.store} }

type memAccounts struct{ store *MemStore }

func (r *memAccounts) Create(ctx context.Context, a *account.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.store.accounts[a.Username] = a
	return nil
}

func (r *memAccounts) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[username]
	if !ok {
		return nil, account.ErrNoUser
	}
	clone := *a
	return &clone, nil
}

func (r *memAccounts) FindByUsernameForUpdate(ctx context.Context, username string) (*account.Account, error) {
	return r.FindByUsername(ctx, username)
}

func (r *memAccounts) SetWalletID(ctx context.Context, username string, walletID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[username]
	if !ok {
		return account.ErrNoUser
	}
	if a.WalletID != nil {
		return wallet.ErrAlreadyActivated
	}
	a.WalletID = &walletID
	return nil
}

type memWallets struct{ store *MemStore }

func (r *memWallets) Create(ctx context.Context) (*wallet.Wallet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextWalletID++
	w := &wallet.Wallet{ID: r.store.nextWalletID, CreatedAt: time.Now()}
	r.store.wallets[w.ID] = w
	clone := *w
	return &clone, nil
}

func (r *memWallets) Get(ctx context.Context, id int64) (*wallet.Wallet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.wallets[id]
	if !ok {
		return nil, wallet.ErrNoWallet
	}
	clone := *w
	return &clone, nil
}

func (r *memWallets) GetForUpdate(ctx context.Context, id int64) (*wallet.Wallet, error) {
	return r.Get(ctx, id)
}

func (r *memWallets) AddToBalance(ctx context.Context, id int64, delta int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.wallets[id]
	if !ok {
		return 0, wallet.ErrNoWallet
	}
	w.Balance += delta
	return w.Balance, nil
}

func (r *memWallets) AppendEntry(ctx context.Context, e *wallet.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextEntryID++
	e.ID = r.store.nextEntryID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.store.entries = append(r.store.entries, *e)
	return nil
}

func (r *memWallets) History(ctx context.Context, walletID int64) ([]wallet.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []wallet.Entry
	for i := len(r.store.entries) - 1; i >= 0; i-- {
		e := r.store.entries[i]
		if e.ToWalletID == walletID || (e.FromWalletID != nil && *e.FromWalletID == walletID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memJobs struct{ store *MemStore }

func (r *memJobs) Create(ctx context.Context, j *job.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextJobID++
	j.ID = r.store.nextJobID
	j.CreatedAt = time.Now()
	for i := range j.PriceTiers {
		j.PriceTiers[i].JobID = j.ID
	}
	clone := *j
	r.store.jobs[j.ID] = &clone
	return nil
}

func (r *memJobs) Get(ctx context.Context, id int64) (*job.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	j, ok := r.store.jobs[id]
	if !ok {
		return nil, job.ErrNoJob
	}
	clone := *j
	r.hydrate(&clone)
	return &clone, nil
}

func (r *memJobs) List(ctx context.Context, opts jobrepo.ListOptions) ([]job.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]int64, 0, len(r.store.jobs))
	for id := range r.store.jobs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] > ids[k] })
	var out []job.Job
	for _, id := range ids {
		j := r.store.jobs[id]
		if opts.ApprovedOnly != j.IsApproved() {
			continue
		}
		clone := *j
		r.hydrate(&clone)
		out = append(out, clone)
	}
	return out, nil
}

func (r *memJobs) Update(ctx context.Context, id int64, patch job.Patch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	j, ok := r.store.jobs[id]
	if !ok {
		return job.ErrNoJob
	}
	if patch.Name != nil {
		j.Name = *patch.Name
	}
	if patch.Description != nil {
		j.Description = *patch.Description
	}
	if patch.TypeID != nil {
		j.TypeID = *patch.TypeID
	}
	if patch.CVURL != nil {
		j.CVURL = *patch.CVURL
	}
	if patch.PriceTiers != nil {
		tiers := make([]job.PriceTier, len(patch.PriceTiers))
		copy(tiers, patch.PriceTiers)
		for i := range tiers {
			tiers[i].JobID = id
		}
		j.PriceTiers = tiers
	}
	j.Status = nil
	return nil
}

func (r *memJobs) SetStatus(ctx context.Context, id int64, approved bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	j, ok := r.store.jobs[id]
	if !ok {
		return job.ErrNoJob
	}
	j.Status = &approved
	return nil
}

func (r *memJobs) ListTypes(ctx context.Context) ([]job.Type, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]job.Type, len(r.store.jobTypes))
	copy(out, r.store.jobTypes)
	return out, nil
}

func (r *memJobs) hydrate(j *job.Job) {
	if a, ok := r.store.accounts[j.Username]; ok {
		j.Fullname = a.Fullname
	}
	for _, t := range r.store.jobTypes {
		if t.ID == j.TypeID {
			j.TypeName = t.Name
		}
	}
}

type memTransactions struct{ store *MemStore }

func (r *memTransactions) Create(ctx context.Context, t *transaction.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextTxID++
	t.ID = r.store.nextTxID
	t.CreatedAt = time.Now()
	clone := *t
	r.store.transactions[t.ID] = &clone
	return nil
}

func (r *memTransactions) Get(ctx context.Context, id int64) (*transaction.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, transaction.ErrNoTransaction
	}
	clone := *t
	return &clone, nil
}

func (r *memTransactions) GetDetail(ctx context.Context, id int64) (*transaction.Detail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, transaction.ErrNoTransaction
	}
	d := r.detail(t)
	return &d, nil
}

func (r *memTransactions) ListByBuyer(ctx context.Context, username string) ([]transaction.Detail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]int64, 0, len(r.store.transactions))
	for id, t := range r.store.transactions {
		if t.Buyer == username {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] > ids[k] })
	out := make([]transaction.Detail, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.detail(r.store.transactions[id]))
	}
	return out, nil
}

func (r *memTransactions) MarkFinished(ctx context.Context, id int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok {
		return transaction.ErrNoTransaction
	}
	t.Finished = true
	t.FinishedAt = &at
	return nil
}

func (r *memTransactions) SetReview(ctx context.Context, id int64, review string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok {
		return transaction.ErrNoTransaction
	}
	t.Review = &review
	return nil
}

func (r *memTransactions) detail(t *transaction.Transaction) transaction.Detail {
	d := transaction.Detail{
		ID:         t.ID,
		Buyer:      t.Buyer,
		Price:      t.Price,
		JobID:      t.JobID,
		Review:     t.Review,
		IsFinished: t.Finished,
		CreatedAt:  t.CreatedAt,
		FinishedAt: t.FinishedAt,
	}
	if j, ok := r.store.jobs[t.JobID]; ok {
		d.JobName = j.Name
		d.JobDescription = j.Description
		d.Seller.Username = j.Username
		if a, ok := r.store.accounts[j.Username]; ok {
			d.Seller.Fullname = a.Fullname
		}
		if tier := j.TierFor(t.Price); tier != nil {
			d.PriceDescription = tier.Description
		}
	}
	if req, ok := r.store.refunds[t.ID]; ok {
		d.Refund = &transaction.RefundInfo{
			Reason:    req.Reason,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		}
	}
	return d
}

type memRefunds struct{ store *MemStore }

func (r *memRefunds) Create(ctx context.Context, req *refund.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.refunds[req.TransactionID]; exists {
		return refund.ErrAlreadyRequested
	}
	req.CreatedAt = time.Now()
	clone := *req
	r.store.refunds[req.TransactionID] = &clone
	return nil
}

func (r *memRefunds) GetByTransaction(ctx context.Context, transactionID int64) (*refund.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.refunds[transactionID]
	if !ok {
		return nil, refund.ErrNoRequest
	}
	clone := *req
	return &clone, nil
}

func (r *memRefunds) Resolve(ctx context.Context, transactionID int64, approved bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.refunds[transactionID]
	if !ok {
		return refund.ErrNoRequest
	}
	req.Status = &approved
	return nil
}

func (r *memRefunds) ListPending(ctx context.Context) ([]refund.PendingRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]int64, 0, len(r.store.refunds))
	for id, req := range r.store.refunds {
		if req.IsPending() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] < ids[k] })
	out := make([]refund.PendingRequest, 0, len(ids))
	for _, id := range ids {
		req := r.store.refunds[id]
		p := refund.PendingRequest{
			TransactionID: id,
			Reason:        req.Reason,
			CreatedAt:     req.CreatedAt,
		}
		if t, ok := r.store.transactions[id]; ok {
			p.Buyer = t.Buyer
			p.Price = t.Price
			if j, ok := r.store.jobs[t.JobID]; ok {
				p.Seller = j.Username
				p.JobName = j.Name
				p.JobDescription = j.Description
				for _, jt := range r.store.jobTypes {
					if jt.ID == j.TypeID {
						p.JobType = jt.Name
					}
				}
				if tier := j.TierFor(t.Price); tier != nil {
					p.PriceDescription = tier.Description
				}
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type memMessages struct{ store *MemStore }

func (r *memMessages) Create(ctx context.Context, m *message.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextMsgID++
	m.ID = r.store.nextMsgID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.store.messages = append(r.store.messages, *m)
	return nil
}

func (r *memMessages) ListNotifications(ctx context.Context, username string) ([]message.Message, error) {
	return r.store.Notifications(username), nil
}
