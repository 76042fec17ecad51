package jobboard

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Jobs interface {
	repository.Repository[*Job]

	Create(ctx context.Context, record *Job, criteria ...repository.InsertCriteria) (*Job, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Job, criteria ...repository.InsertCriteria) (*Job, error)

	List(ctx context.Context, limit, offset int) ([]*Job, error)
	ByEmployer(ctx context.Context, employerID uuid.UUID, limit, offset int) ([]*Job, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type jobs struct {
	repository.Repository[*Job]
	db *bun.DB
}

var _ Jobs = (*jobs)(nil)

func NewJobsRepository(db *bun.DB) Jobs {
	repo := repository.NewRepository[*Job](db, repository.ModelHandlers[*Job]{
		NewRecord: func() *Job { return &Job{} },
		GetID: func(j *Job) uuid.UUID {
			if j == nil {
				return uuid.Nil
			}
			return j.ID
		},
		SetID: func(j *Job, id uuid.UUID) {
			if j != nil {
				j.ID = id
			}
		},
		GetIdentifier: func() string {
			return "title"
		},
	})

	return &jobs{
		Repository: repo,
		db:         db,
	}
}

func (a *jobs) Create(ctx context.Context, record *Job, criteria ...repository.InsertCriteria) (*Job, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *jobs) CreateTx(ctx context.Context, tx bun.IDB, record *Job, criteria ...repository.InsertCriteria) (*Job, error) {
	prepareJobDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *jobs) List(ctx context.Context, limit, offset int) ([]*Job, error) {
	var records []*Job
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *jobs) ByEmployer(ctx context.Context, employerID uuid.UUID, limit, offset int) ([]*Job, error) {
	var records []*Job
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.employer_id = ?", employerID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *jobs) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.NewDelete().
		Model((*Job)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func prepareJobDefaults(record *Job) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.EmploymentType == "" {
		record.EmploymentType = EmploymentFullTime
	}
}
