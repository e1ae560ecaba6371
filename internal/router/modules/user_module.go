package modules

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jucamargo/juju-library/internal/domain/repository"
	httpiface "github.com/jucamargo/juju-library/internal/interface/http"
	"github.com/jucamargo/juju-library/internal/interface/middleware"
	"github.com/jucamargo/juju-library/pkg/helpers"
	"github.com/jucamargo/juju-library/pkg/validation"
)

// UserModule owns registration, login and the authenticated user listing.
type UserModule struct {
	handler *httpiface.UserHandler
	repo    repository.UserRepository
	jwt     *helpers.JWTManager
}

func NewUserModule(h *httpiface.UserHandler, repo repository.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{handler: h, repo: repo, jwt: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	emailFree := func(ctx context.Context, email string) (bool, error) {
		taken, err := m.repo.ExistsByEmail(ctx, email)
		return !taken, err
	}
	emailTaken := func(ctx context.Context, email string) (bool, error) {
		return m.repo.ExistsByEmail(ctx, email)
	}

	registerRules := []validation.Rule{
		validation.Body("email", "required", "email is required"),
		validation.Body("email", "email", "email is not valid"),
		validation.BodyCheck("email", emailFree, "user already exists by email"),
		validation.Body("password", "required", "password is required"),
		validation.Body("password", "min=8", "password is too short"),
	}
	loginRules := []validation.Rule{
		validation.Body("email", "required", "email is required"),
		validation.Body("email", "email", "email is not valid"),
		validation.BodyCheck("email", emailTaken, "user does not exist"),
		validation.Body("password", "required", "password is required"),
		validation.Body("password", "min=8", "password is too short"),
	}

	users := rg.Group("/user")
	users.POST("", validation.Guard(registerRules...), m.handler.Register)
	users.POST("/login", validation.Guard(loginRules...), m.handler.Login)
	users.GET("", middleware.Auth(m.jwt), m.handler.List)
}
