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

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

// bookRequest carries the three writable fields. Presence is enforced by the
// route's validation guard, so there are no binding tags here.
type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
}

type statusRequest struct {
	Status bool `json:"status"`
}

// fail logs storage failures and writes the public message for everything.
func (h *BookHandler) fail(c *gin.Context, err error) {
	if apperr.Is(err, apperr.Storage) && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("book storage failure")
	}
	response.Error(c, apperr.Status(err), apperr.Message(err))
}

func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), req.Title, req.Author, req.Year)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"book": b}, "book created")
}

func (h *BookHandler) GetByID(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": b}, "book found")
}

func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"books": books}, "books found")
}

func (h *BookHandler) Search(c *gin.Context) {
	books, err := h.Svc.Search(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": books}, "search results")
}

func (h *BookHandler) Update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Author, req.Year)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": b}, "book updated")
}

func (h *BookHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": b}, "book status updated")
}

func (h *BookHandler) Delete(c *gin.Context) {
	b, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": b}, "book deleted")
}

// UploadCover accepts a multipart "cover" file and stores it in GCS.
func (h *BookHandler) UploadCover(c *gin.Context) {
	fh, err := c.FormFile("cover")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cover file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read cover file")
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	b, err := h.Svc.UploadCover(c.Request.Context(), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"book": b}, "cover uploaded")
}
