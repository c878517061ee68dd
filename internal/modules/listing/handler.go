package listing

import (
	"net/http"

	"travelapp/internal/domain"
	"travelapp/internal/pkg/response"
	"travelapp/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	listings := rg.Group("/listings")
	{
		listings.GET("", h.List)
		listings.POST("", h.Create)
		listings.GET("/:id", h.Get)
		listings.PUT("/:id", h.Update)
		listings.PATCH("/:id", h.Update)
		listings.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req, err := DecodeCreateListing(body)
	if err != nil {
		response.FromError(c, err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewListingDetail(l))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.FromError(c, domain.ErrNotFound)
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewListingDetail(l))
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := utils.Pagination(c)

	items, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  NewListingList(items),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.FromError(c, domain.ErrNotFound)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req, err := DecodeUpdateListing(body)
	if err != nil {
		response.FromError(c, err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewListingDetail(l))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.FromError(c, domain.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
