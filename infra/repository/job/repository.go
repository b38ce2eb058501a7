// Package job implements the job listing repository over gorm.
package job

import (
	"context"
	"errors"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/job"
	repo "github.com/huanvu/gigmart/pkg/repository/job"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a job repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, j *job.Job) error {
	if len(j.PriceTiers) == 0 {
		return job.ErrNoPriceTiers
	}
	m := model.Job{
		Username:    j.Username,
		Name:        j.Name,
		Description: j.Description,
		TypeID:      j.TypeID,
		CVURL:       j.CVURL,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	tiers := make([]model.JobPriceTier, 0, len(j.PriceTiers))
	for _, t := range j.PriceTiers {
		tiers = append(tiers, model.JobPriceTier{
			JobID:       m.ID,
			Price:       t.Price,
			Description: t.Description,
		})
	}
	if err := r.db.WithContext(ctx).Create(&tiers).Error; err != nil {
		return err
	}
	j.ID = m.ID
	j.Status = nil
	j.CreatedAt = m.CreatedAt
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*job.Job, error) {
	var m model.Job
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, job.ErrNoJob
		}
		return nil, err
	}
	out, err := r.hydrate(ctx, []model.Job{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *repository) List(ctx context.Context, opts repo.ListOptions) ([]job.Job, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if opts.ApprovedOnly {
		q = q.Where("status = TRUE")
	} else {
		q = q.Where("status IS NOT TRUE")
	}
	f := opts.Filter
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.TypeID != 0 {
		q = q.Where("type_id = ?", f.TypeID)
	}
	if f.PriceLower > 0 || f.PriceUpper > 0 {
		upper := f.PriceUpper
		if upper == 0 {
			upper = 1_000_000_000
		}
		q = q.Where(
			"id IN (?)",
			r.db.Model(&model.JobPriceTier{}).
				Select("job_id").
				Where("price BETWEEN ? AND ?", f.PriceLower, upper),
		)
	}
	q = q.Order("created_at DESC")
	if opts.Size != -1 {
		q = q.Limit(opts.Size).Offset(opts.Page * opts.Size)
	}

	var ms []model.Job
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, ms)
}

func (r *repository) Update(ctx context.Context, id int64, patch job.Patch) error {
	updates := map[string]any{"status": nil}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.TypeID != nil {
		updates["type_id"] = *patch.TypeID
	}
	if patch.CVURL != nil {
		updates["cv_url"] = *patch.CVURL
	}
	res := r.db.WithContext(ctx).Model(&model.Job{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return job.ErrNoJob
	}

	if patch.PriceTiers != nil {
		if err := r.db.WithContext(ctx).
			Where("job_id = ?", id).
			Delete(&model.JobPriceTier{}).Error; err != nil {
			return err
		}
		tiers := make([]model.JobPriceTier, 0, len(patch.PriceTiers))
		for _, t := range patch.PriceTiers {
			tiers = append(tiers, model.JobPriceTier{
				JobID:       id,
				Price:       t.Price,
				Description: t.Description,
			})
		}
		if err := r.db.WithContext(ctx).Create(&tiers).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Update("status", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return job.ErrNoJob
	}
	return nil
}

func (r *repository) ListTypes(ctx context.Context) ([]job.Type, error) {
	var ms []model.JobType
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	types := make([]job.Type, 0, len(ms))
	for _, m := range ms {
		types = append(types, job.Type{ID: m.ID, Name: m.Name})
	}
	return types, nil
}

// hydrate joins the uploader, job type and price tiers onto the raw job
// rows.
func (r *repository) hydrate(ctx context.Context, ms []model.Job) ([]job.Job, error) {
	out := make([]job.Job, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		j := job.Job{
			ID:          m.ID,
			Username:    m.Username,
			Name:        m.Name,
			Description: m.Description,
			TypeID:      m.TypeID,
			CVURL:       m.CVURL,
			Status:      m.Status,
			CreatedAt:   m.CreatedAt,
		}

		var acct model.Account
		if err := r.db.WithContext(ctx).
			Select("fullname").
			First(&acct, "username = ?", m.Username).Error; err == nil {
			j.Fullname = acct.Fullname
		}
		var jt model.JobType
		if err := r.db.WithContext(ctx).First(&jt, "id = ?", m.TypeID).Error; err == nil {
			j.TypeName = jt.Name
		}

		var tiers []model.JobPriceTier
		if err := r.db.WithContext(ctx).
			Where("job_id = ?", m.ID).
			Order("price").
			Find(&tiers).Error; err != nil {
			return nil, err
		}
		for _, t := range tiers {
			j.PriceTiers = append(j.PriceTiers, job.PriceTier{
				JobID:       t.JobID,
				Price:       t.Price,
				Description: t.Description,
			})
		}
		out = append(out, j)
	}
	return out, nil
}
