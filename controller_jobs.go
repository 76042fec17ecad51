package jobboard

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type JobsController struct {
	Logger       Logger
	Repo         RepositoryManager
	ErrorHandler router.ErrorHandler
}

func NewJobsController(repo RepositoryManager) *JobsController {
	return &JobsController{
		Logger:       defLogger{},
		Repo:         repo,
		ErrorHandler: defaultErrHandler,
	}
}

func (a *JobsController) WithLogger(logger Logger) *JobsController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterJobRoutes mounts the posting endpoints. Browsing is open,
// mutations require an active employer account that owns the posting.
func RegisterJobRoutes[T any](app router.Router[T], c *JobsController, protected ...router.MiddlewareFunc) {
	app.Get("/jobs", c.Index).SetName("jobs.index")
	app.Get("/jobs/:id", c.Show).SetName("jobs.show")
	app.Post("/jobs", c.Create, protected...).SetName("jobs.create")
	app.Put("/jobs/:id", c.Update, protected...).SetName("jobs.update")
	app.Delete("/jobs/:id", c.Delete, protected...).SetName("jobs.delete")
	app.Get("/jobs/:id/applications", c.Applications, protected...).SetName("jobs.applications")
}

func (a *JobsController) Index(ctx router.Context) error {
	limit, offset := paginationParams(ctx)

	records, err := a.Repo.Jobs().List(ctx.Context(), limit, offset)
	if err != nil {
		a.Logger.Error("jobs index error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *JobsController) Show(ctx router.Context) error {
	record, err := a.Repo.Jobs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "job not found")
		}
		a.Logger.Error("jobs show error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// JobPayload is the create/update body for a posting
type JobPayload struct {
	Title          string `form:"title" json:"title"`
	Description    string `form:"description" json:"description"`
	EmploymentType string `form:"employment_type" json:"employment_type"`
	Location       string `form:"location" json:"location"`
	IsActive       *bool  `form:"is_active" json:"is_active"`
}

func (r JobPayload) Validate(forCreate bool) *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		rules := []*validation.FieldRules{
			validation.Field(&r.EmploymentType, validation.By(validateEmploymentType)),
			validation.Field(&r.Location, validation.Length(0, 200)),
		}

		if forCreate {
			rules = append(rules,
				validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
				validation.Field(&r.Description, validation.Required),
			)
		} else {
			rules = append(rules,
				validation.Field(&r.Title, validation.Length(3, 200)),
			)
		}

		return validation.ValidateStruct(&r, rules...)
	}, "Invalid job payload")
}

func validateEmploymentType(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !ValidEmploymentType(EmploymentType(s)) {
		return goerrors.New("unknown employment type", goerrors.CategoryValidation)
	}
	return nil
}

func (a *JobsController) Create(ctx router.Context) error {
	identity, err := requireEmployer(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(JobPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse job payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(true); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	employerID, err := uuid.Parse(identity.ID())
	if err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryInternal, "acting identity has invalid id"))
	}

	record := &Job{
		Title:          payload.Title,
		Description:    payload.Description,
		EmploymentType: EmploymentType(payload.EmploymentType),
		Location:       payload.Location,
		IsActive:       true,
		EmployerID:     employerID,
	}

	if payload.IsActive != nil {
		record.IsActive = *payload.IsActive
	}

	created, err := a.Repo.Jobs().Create(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("jobs create error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, created)
}

func (a *JobsController) Update(ctx router.Context) error {
	identity, err := requireEmployer(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	existing, err := a.Repo.Jobs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "job not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	if err := requireJobOwner(identity, existing); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(JobPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse job payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(false); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	record := &Job{
		ID:             existing.ID,
		Title:          payload.Title,
		Description:    payload.Description,
		EmploymentType: EmploymentType(payload.EmploymentType),
		Location:       payload.Location,
	}

	if payload.IsActive != nil {
		existing.IsActive = *payload.IsActive
	}
	record.IsActive = existing.IsActive

	// Zero-valued model fields are omitted from the UPDATE, so the active
	// flag has to travel as an explicit model value or a false never
	// reaches the row.
	updated, err := a.Repo.Jobs().Update(ctx.Context(), record,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateRawProcessor(func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.Value("is_active", "?", record.IsActive)
		}),
	)
	if err != nil {
		a.Logger.Error("jobs update error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, updated)
}

func (a *JobsController) Delete(ctx router.Context) error {
	identity, err := requireEmployer(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	existing, err := a.Repo.Jobs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "job not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	if err := requireJobOwner(identity, existing); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Repo.Jobs().DeleteByID(ctx.Context(), existing.ID); err != nil {
		a.Logger.Error("jobs delete error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"detail": "job deleted",
	})
}

// Applications lists submissions for a posting the acting employer owns
func (a *JobsController) Applications(ctx router.Context) error {
	identity, err := requireEmployer(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	existing, err := a.Repo.Jobs().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "job not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	if err := requireJobOwner(identity, existing); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	limit, offset := paginationParams(ctx)

	records, err := a.Repo.Applications().ByJob(ctx.Context(), existing.ID, limit, offset)
	if err != nil {
		a.Logger.Error("jobs applications error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// requireEmployer resolves the acting identity and checks it may manage postings
func requireEmployer(ctx router.Context) (Identity, error) {
	identity, ok := IdentityFromRouterContext(ctx)
	if !ok {
		return nil, goerrors.New("missing acting identity", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	if !UserRole(identity.Role()).CanPostJobs() {
		return nil, goerrors.New("only employer accounts may manage job postings", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	return identity, nil
}

func requireJobOwner(identity Identity, job *Job) error {
	if job == nil || identity.ID() != job.EmployerID.String() {
		return goerrors.New("job posting belongs to another employer", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}
	return nil
}
