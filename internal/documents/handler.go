package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.DELETE("/documents/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	token := c.GetHeader("X-User-Id")
	contentType := fileHeader.Header.Get("Content-Type")

	doc, err := h.Svc.Create(c.Request.Context(), token, fileHeader.Filename, contentType, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", err.Error())
		}
		return
	}

	c.Set("userId", doc.UserID)
	c.Set("documentId", doc.ID)
	respond.Created(c, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", err.Error())
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", err.Error())
		}
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("documentId", id)

	switch c.DefaultQuery("mode", "soft") {
	case "soft":
		doc, err := h.Svc.SoftDelete(c.Request.Context(), id)
		if err != nil {
			h.deleteError(c, err)
			return
		}
		respond.OK(c, gin.H{
			"status":     "deleted",
			"id":         doc.ID,
			"deleted_at": doc.DeletedAt,
		})
	case "hard":
		if err := h.Svc.HardDelete(c.Request.Context(), id); err != nil {
			h.deleteError(c, err)
			return
		}
		respond.OK(c, gin.H{
			"status": "purged",
			"id":     id,
		})
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "mode must be soft or hard", nil)
	}
}

func (h *Handler) deleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", err.Error())
	}
}
