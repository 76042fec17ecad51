package jobboard

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

type ApplicationsController struct {
	Logger       Logger
	Repo         RepositoryManager
	ErrorHandler router.ErrorHandler
}

func NewApplicationsController(repo RepositoryManager) *ApplicationsController {
	return &ApplicationsController{
		Logger:       defLogger{},
		Repo:         repo,
		ErrorHandler: defaultErrHandler,
	}
}

func (a *ApplicationsController) WithLogger(logger Logger) *ApplicationsController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterApplicationRoutes mounts the submission endpoints. Applicants
// manage their own submissions, employers move them through review.
func RegisterApplicationRoutes[T any](app router.Router[T], c *ApplicationsController, protected ...router.MiddlewareFunc) {
	app.Get("/applications", c.Index, protected...).SetName("applications.index")
	app.Get("/applications/:id", c.Show, protected...).SetName("applications.show")
	app.Post("/applications", c.Create, protected...).SetName("applications.create")
	app.Put("/applications/:id", c.Update, protected...).SetName("applications.update")
	app.Delete("/applications/:id", c.Delete, protected...).SetName("applications.delete")
}

// Index lists the acting account's own submissions
func (a *ApplicationsController) Index(ctx router.Context) error {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	applicantID, err := uuid.Parse(identity.ID())
	if err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryInternal, "acting identity has invalid id"))
	}

	limit, offset := paginationParams(ctx)

	records, err := a.Repo.Applications().ByApplicant(ctx.Context(), applicantID, limit, offset)
	if err != nil {
		a.Logger.Error("applications index error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *ApplicationsController) Show(ctx router.Context) error {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	record, err := a.Repo.Applications().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "application not found")
		}
		a.Logger.Error("applications show error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := a.requireApplicationAccess(ctx, identity, record); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// ApplicationCreatePayload is the submission body
type ApplicationCreatePayload struct {
	JobID       string `form:"job_id" json:"job_id"`
	CoverLetter string `form:"cover_letter" json:"cover_letter"`
}

func (r ApplicationCreatePayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.JobID, validation.Required),
			validation.Field(&r.CoverLetter, validation.Length(0, 10000)),
		)
	}, "Invalid application payload")
}

func (a *ApplicationsController) Create(ctx router.Context) error {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(ApplicationCreatePayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse application payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	job, err := a.Repo.Jobs().GetByID(ctx.Context(), payload.JobID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "job not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	if !job.IsActive {
		return a.ErrorHandler(ctx, goerrors.New("job posting is no longer accepting applications", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict))
	}

	applicantID, err := uuid.Parse(identity.ID())
	if err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryInternal, "acting identity has invalid id"))
	}

	record := &Application{
		JobID:       job.ID,
		ApplicantID: applicantID,
		CoverLetter: payload.CoverLetter,
		Status:      ApplicationSubmitted,
	}

	created, err := a.Repo.Applications().Create(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("applications create error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, created)
}

// ApplicationUpdatePayload mutates a submission. Applicants may revise
// their cover letter, employers may move the status.
type ApplicationUpdatePayload struct {
	CoverLetter string `form:"cover_letter" json:"cover_letter"`
	Status      string `form:"status" json:"status"`
}

func (r ApplicationUpdatePayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.CoverLetter, validation.Length(0, 10000)),
			validation.Field(&r.Status, validation.By(validateApplicationStatus)),
		)
	}, "Invalid application payload")
}

func validateApplicationStatus(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !ValidApplicationStatus(ApplicationStatus(s)) {
		return goerrors.New("unknown application status", goerrors.CategoryValidation)
	}
	return nil
}

func (a *ApplicationsController) Update(ctx router.Context) error {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	existing, err := a.Repo.Applications().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "application not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	payload := new(ApplicationUpdatePayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse application payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	isApplicant := identity.ID() == existing.ApplicantID.String()

	if payload.Status != "" {
		if err := a.requireReviewAccess(ctx, identity, existing); err != nil {
			return a.ErrorHandler(ctx, err)
		}
		existing.Status = ApplicationStatus(payload.Status)
	} else if !isApplicant {
		return a.ErrorHandler(ctx, goerrors.New("application belongs to another account", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden))
	}

	if payload.CoverLetter != "" {
		if !isApplicant {
			return a.ErrorHandler(ctx, goerrors.New("only the applicant may edit the cover letter", goerrors.CategoryAuthz).
				WithCode(goerrors.CodeForbidden))
		}
		existing.CoverLetter = payload.CoverLetter
	}

	updated, err := a.Repo.Applications().Update(ctx.Context(), existing,
		repository.UpdateByID(existing.ID.String()),
	)
	if err != nil {
		a.Logger.Error("applications update error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, updated)
}

func (a *ApplicationsController) Delete(ctx router.Context) error {
	identity, err := requireIdentity(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	existing, err := a.Repo.Applications().GetByID(ctx.Context(), ctx.Param("id"))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "application not found")
		}
		return a.ErrorHandler(ctx, err)
	}

	if identity.ID() != existing.ApplicantID.String() {
		return a.ErrorHandler(ctx, goerrors.New("application belongs to another account", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden))
	}

	if err := a.Repo.Applications().DeleteByID(ctx.Context(), existing.ID); err != nil {
		a.Logger.Error("applications delete error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"detail": "application withdrawn",
	})
}

// requireApplicationAccess allows the applicant or the employer who owns
// the posting to read a submission.
func (a *ApplicationsController) requireApplicationAccess(ctx router.Context, identity Identity, record *Application) error {
	if identity.ID() == record.ApplicantID.String() {
		return nil
	}

	return a.requireReviewAccess(ctx, identity, record)
}

// requireReviewAccess checks the acting account is the employer behind
// the submission's posting.
func (a *ApplicationsController) requireReviewAccess(ctx router.Context, identity Identity, record *Application) error {
	if !UserRole(identity.Role()).CanReviewApplications() {
		return goerrors.New("only employer accounts may review applications", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	job, err := a.Repo.Jobs().GetByID(ctx.Context(), record.JobID.String())
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not load posting for application")
	}

	if identity.ID() != job.EmployerID.String() {
		return goerrors.New("application belongs to another employer's posting", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	return nil
}

// requireIdentity resolves the acting identity stored by the
// active-account middleware.
func requireIdentity(ctx router.Context) (Identity, error) {
	identity, ok := IdentityFromRouterContext(ctx)
	if !ok {
		return nil, goerrors.New("missing acting identity", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}
	return identity, nil
}
