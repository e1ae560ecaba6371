package router

import (
	"github.com/jucamargo/juju-library/internal/application"
	"github.com/jucamargo/juju-library/internal/container"
	"github.com/jucamargo/juju-library/internal/infrastructure/postgres"
	httpiface "github.com/jucamargo/juju-library/internal/interface/http"
	"github.com/jucamargo/juju-library/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and adds every feature module to the registry.
func InitModules(registry *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()

	bookRepo := postgres.NewBookRepository(container.GetPGPool())
	bookSvc := &application.BookService{
		Repo:         bookRepo,
		Logger:       log,
		ES:           container.GetES(),
		ESBooksIndex: cfg.ESBooksIndex,
		GCS:          container.GetGCS(),
		GCSBucket:    cfg.GCSBucket,
	}
	bookHandler := &httpiface.BookHandler{Svc: bookSvc, Logger: log}

	userRepo := postgres.NewUserRepository(container.GetPGPool())
	userSvc := &application.UserService{
		Repo:        userRepo,
		JWT:         container.GetJWT(),
		Pub:         container.GetRabbitPub(),
		Logger:      log,
		AppName:     cfg.AppName,
		MailEnabled: cfg.MailSendEnabled,
	}
	userHandler := &httpiface.UserHandler{Svc: userSvc, Logger: log}

	registry.Add(modules.NewBookModule(bookHandler, bookRepo, container.GetJWT()))
	registry.Add(modules.NewUserModule(userHandler, userRepo, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		registry.Add(modules.NewDebugModule())
	}
}
