package review

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
	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", h.Create)
		reviews.GET("/:id", h.Get)
		reviews.PUT("/:id", h.Update)
		reviews.PATCH("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
	rg.GET("/listings/:id/reviews", h.ListForListing)
}

func (h *Handler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req, err := DecodeCreateReview(body)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewReviewDetail(rv))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.FromError(c, domain.ErrNotFound)
		return
	}

	rv, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewReviewDetail(rv))
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := utils.Pagination(c)

	items, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  NewReviewList(items),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) ListForListing(c *gin.Context) {
	listingID, ok := utils.ParseID(c, "id")
	if !ok {
		response.FromError(c, domain.ErrNotFound)
		return
	}
	limit, offset := utils.Pagination(c)

	items, err := h.service.ListForListing(c.Request.Context(), listingID, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items":  NewReviewList(items),
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
	req, err := DecodeUpdateReview(body)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rv, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewReviewDetail(rv))
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
