package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/jucamargo/juju-library/internal/application"
	"github.com/jucamargo/juju-library/pkg/apperr"
	"github.com/jucamargo/juju-library/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// credentialsRequest is shared by registration and login; the guard enforces
// presence, email syntax and password length before the handler runs.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	if apperr.Is(err, apperr.Storage) && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("user storage failure")
	}
	response.Error(c, apperr.Status(err), apperr.Message(err))
}

// Register creates the account. The password hash never appears in the
// response: the projection below is explicit and the entity's Password field
// is excluded from JSON anyway.
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}}, "user created")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "expires_at": exp}, "user logged")
}

// List returns every user; hashes stay out of the payload via the entity's
// json tags.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": users}, "users found")
}
