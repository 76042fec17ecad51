package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/config"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	auth   jobboard.Authenticator
	auther *jobboard.RouteAuthenticator
	repo   jobboard.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("jobboard"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		panic(err)
	}

	RegisterRoutes(app)

	app.srv.Serve(app.Config().GetApp().GetAddress())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*jobboard.User)(nil))
	persistence.RegisterModel((*jobboard.Job)(nil))
	persistence.RegisterModel((*jobboard.Application)(nil))

	cfg := app.Config().GetPersistence()
	dialect := sqlitedialect.New()
	client, err := persistence.New(cfg, db, dialect)
	if err != nil {
		log.Fatal(err)
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(jobboard.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	client.RegisterFixtures(jobboard.GetFixturesFS()).AddOptions(persistence.WithTrucateTables())

	if err := client.Seed(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = jobboard.NewRepositoryManager(client.DB())

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:           app.Config().GetApp().GetName(),
			UnescapePath:      true,
			EnablePrintRoutes: true,
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.srv = srv

	return nil
}

// userStoreAdapter narrows the repository surface to what the identity
// provider needs.
type userStoreAdapter struct {
	users jobboard.Users
}

func (a userStoreAdapter) GetByIdentifier(ctx context.Context, identifier string) (*jobboard.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	cfg := app.Config().GetAuth()

	if err := app.repo.Validate(); err != nil {
		return err
	}

	userProvider := jobboard.NewUserProvider(userStoreAdapter{users: app.repo.Users()})
	userProvider.WithLogger(app.GetLogger("auth:prv"))

	authenticator := jobboard.NewAuthenticator(userProvider, cfg)
	authenticator.WithLogger(app.GetLogger("auth:authz"))

	app.auth = authenticator

	httpAuth, err := jobboard.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}

	httpAuth.Logger = app.GetLogger("auth:http")

	app.auther = httpAuth

	jobboard.RegisterAuthRoutes(app.srv.Router().Group("/"),
		jobboard.WithAuthControllerRepo(app.repo),
		jobboard.WithAuthControllerAuther(httpAuth),
		jobboard.WithAuthControllerLogger(app.GetLogger("auth:ctrl")),
	)

	return nil
}

func RegisterRoutes(app *App) {
	p := app.srv.Router()

	cfg := app.Config().GetAuth()

	protected := app.auther.ProtectedRoute(cfg, app.auther.MakeAPIAuthErrorHandler())
	active := app.auther.ActiveAccount()

	users := jobboard.NewUsersController(app.repo).WithLogger(app.GetLogger("users:ctrl"))
	jobs := jobboard.NewJobsController(app.repo).WithLogger(app.GetLogger("jobs:ctrl"))
	applications := jobboard.NewApplicationsController(app.repo).WithLogger(app.GetLogger("apls:ctrl"))

	jobboard.RegisterUserRoutes(p, users, protected, active)
	jobboard.RegisterJobRoutes(p, jobs, protected, active)
	jobboard.RegisterApplicationRoutes(p, applications, protected, active)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
