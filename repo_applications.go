package jobboard

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Applications interface {
	repository.Repository[*Application]

	Create(ctx context.Context, record *Application, criteria ...repository.InsertCriteria) (*Application, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Application, criteria ...repository.InsertCriteria) (*Application, error)

	List(ctx context.Context, limit, offset int) ([]*Application, error)
	ByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*Application, error)
	ByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]*Application, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type applications struct {
	repository.Repository[*Application]
	db *bun.DB
}

var _ Applications = (*applications)(nil)

func NewApplicationsRepository(db *bun.DB) Applications {
	repo := repository.NewRepository[*Application](db, repository.ModelHandlers[*Application]{
		NewRecord: func() *Application { return &Application{} },
		GetID: func(a *Application) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Application, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
	})

	return &applications{
		Repository: repo,
		db:         db,
	}
}

func (a *applications) Create(ctx context.Context, record *Application, criteria ...repository.InsertCriteria) (*Application, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *applications) CreateTx(ctx context.Context, tx bun.IDB, record *Application, criteria ...repository.InsertCriteria) (*Application, error) {
	prepareApplicationDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *applications) List(ctx context.Context, limit, offset int) ([]*Application, error) {
	var records []*Application
	err := a.db.NewSelect().
		Model(&records).
		Order("applied_at DESC").
		Limit(normalizeLimit(limit)).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *applications) ByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*Application, error) {
	var records []*Application
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.job_id = ?", jobID).
		Order("applied_at DESC").
		Limit(normalizeLimit(limit)).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *applications) ByApplicant(ctx context.Context, applicantID uuid.UUID, limit, offset int) ([]*Application, error) {
	var records []*Application
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Limit(normalizeLimit(limit)).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *applications) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := a.db.NewDelete().
		Model((*Application)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func prepareApplicationDefaults(record *Application) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.Status == "" {
		record.Status = ApplicationSubmitted
	}
}
