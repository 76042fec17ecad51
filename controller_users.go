package jobboard

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UsersController struct {
	Logger       Logger
	Repo         RepositoryManager
	ErrorHandler router.ErrorHandler
}

func NewUsersController(repo RepositoryManager) *UsersController {
	return &UsersController{
		Logger:       defLogger{},
		Repo:         repo,
		ErrorHandler: defaultErrHandler,
	}
}

func (a *UsersController) WithLogger(logger Logger) *UsersController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterUserRoutes mounts the account directory endpoints. Reads and
// writes require a valid token and an active account, writes are further
// limited to the acting account itself.
func RegisterUserRoutes[T any](app router.Router[T], c *UsersController, protected ...router.MiddlewareFunc) {
	app.Get("/users", c.Index, protected...).SetName("users.index")
	app.Get("/users/:id", c.Show, protected...).SetName("users.show")
	app.Put("/users/:id", c.Update, protected...).SetName("users.update")
	app.Put("/users/:id/password", c.ChangePassword, protected...).SetName("users.password")
	app.Delete("/users/:id", c.Delete, protected...).SetName("users.delete")
}

func (a *UsersController) Index(ctx router.Context) error {
	limit, offset := paginationParams(ctx)

	records, err := a.Repo.Users().List(ctx.Context(), limit, offset)
	if err != nil {
		a.Logger.Error("users index error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *UsersController) Show(ctx router.Context) error {
	id := ctx.Param("id")

	record, err := a.Repo.Users().GetByID(ctx.Context(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "user not found")
		}
		a.Logger.Error("users show error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// UserUpdatePayload carries the fields an account may change about
// itself, including the active flag used to close the account to new
// sessions. Credentials rotate through the password endpoint only.
type UserUpdatePayload struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Phone    string `form:"phone_number" json:"phone_number"`
	IsActive *bool  `form:"is_active" json:"is_active"`
}

func (r UserUpdatePayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Length(3, 100)),
			validation.Field(&r.Email, validation.Length(6, 100), is.Email),
			validation.Field(&r.Phone, validation.By(ValidatePhoneNumber)),
		)
	}, "Invalid user update payload")
}

func (a *UsersController) Update(ctx router.Context) error {
	id, err := requireSelf(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(UserUpdatePayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse user payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	record := &User{
		ID:       id,
		Username: payload.Username,
		Email:    payload.Email,
		Phone:    payload.Phone,
	}

	criteria := []repository.UpdateCriteria{
		repository.UpdateByID(id.String()),
	}

	if payload.IsActive != nil {
		// A false is a zero value and would be omitted from the UPDATE,
		// force it through an explicit model value.
		record.IsActive = *payload.IsActive
		criteria = append(criteria, repository.UpdateRawProcessor(func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.Value("is_active", "?", record.IsActive)
		}))
	}

	updated, err := a.Repo.Users().Update(ctx.Context(), record, criteria...)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return notFoundResponse(ctx, "user not found")
		}
		a.Logger.Error("users update error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, updated)
}

// ChangePasswordPayload carries the replacement secret
type ChangePasswordPayload struct {
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

func (r ChangePasswordPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Password, validation.Required, validation.Length(10, 100)),
			validation.Field(
				&r.ConfirmPassword,
				validation.Required,
				validation.By(ValidateStringEquals(r.Password)),
			),
		)
	}, "Invalid password payload")
}

func (a *UsersController) ChangePassword(ctx router.Context) error {
	id, err := requireSelf(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(ChangePasswordPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse password payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if verr := payload.Validate(); verr != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"detail":     verr.Message,
			"validation": verr.ValidationMap(),
		})
	}

	changePassword := NewChangePasswordHandler(a.Repo).WithLogger(a.Logger)
	if err := changePassword.Execute(ctx.Context(), ChangePasswordMessage{
		UserID:   id,
		Password: payload.Password,
	}); err != nil {
		a.Logger.Error("users change password error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"detail": "password updated",
	})
}

func (a *UsersController) Delete(ctx router.Context) error {
	id, err := requireSelf(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Repo.Users().DeleteByID(ctx.Context(), id); err != nil {
		a.Logger.Error("users delete error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"detail": "account deleted",
	})
}

// requireSelf ensures the :id param names the acting account
func requireSelf(ctx router.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid account id").
			WithCode(goerrors.CodeBadRequest)
	}

	identity, ok := IdentityFromRouterContext(ctx)
	if !ok {
		return uuid.Nil, goerrors.New("missing acting identity", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	if identity.ID() != id.String() {
		return uuid.Nil, goerrors.New("accounts may only modify themselves", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}

	return id, nil
}

func paginationParams(ctx router.Context) (int, int) {
	limit := queryInt(ctx, "limit", 10)
	offset := queryInt(ctx, "offset", 0)
	return limit, offset
}

func queryInt(ctx router.Context, name string, def int) int {
	raw := ctx.Query(name, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return def
	}
	return val
}

func notFoundResponse(ctx router.Context, detail string) error {
	return ctx.JSON(router.StatusNotFound, map[string]any{
		"detail": detail,
	})
}
