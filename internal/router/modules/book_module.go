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

// BookModule owns every /book route. All of them sit behind the auth
// middleware; the per-route guards declare the validation chains that run
// before the handlers.
type BookModule struct {
	handler *httpiface.BookHandler
	repo    repository.BookRepository
	jwt     *helpers.JWTManager
}

func NewBookModule(h *httpiface.BookHandler, repo repository.BookRepository, jwt *helpers.JWTManager) *BookModule {
	return &BookModule{handler: h, repo: repo, jwt: jwt}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	bookExists := func(ctx context.Context, id string) (bool, error) {
		return m.repo.ExistsByID(ctx, id)
	}

	idRules := []validation.Rule{
		validation.Param("id", "required", "id is required"),
		validation.Param("id", "uuid", "id is not valid"),
		validation.ParamCheck("id", bookExists, "book does not exist"),
	}
	bodyRules := []validation.Rule{
		validation.Body("title", "required", "title is required"),
		validation.Body("author", "required", "author is required"),
		validation.Body("year", "required", "year is required"),
	}
	statusRules := []validation.Rule{
		validation.Body("status", "required", "status is required"),
	}
	searchRules := []validation.Rule{
		validation.Param("title", "required", "title is required"),
	}

	books := rg.Group("/book", middleware.Auth(m.jwt))
	books.POST("", validation.Guard(bodyRules...), m.handler.Create)
	books.GET("", m.handler.GetAll)
	books.GET("/:id", validation.Guard(idRules...), m.handler.GetByID)
	books.GET("/search/:title", validation.Guard(searchRules...), m.handler.Search)
	books.PUT("/:id", validation.Guard(append(append([]validation.Rule{}, idRules...), bodyRules...)...), m.handler.Update)
	books.PATCH("/:id", validation.Guard(append(append([]validation.Rule{}, idRules...), statusRules...)...), m.handler.UpdateStatus)
	books.DELETE("/:id", validation.Guard(idRules...), m.handler.Delete)
	books.POST("/:id/cover", validation.Guard(idRules...), m.handler.UploadCover)
}
