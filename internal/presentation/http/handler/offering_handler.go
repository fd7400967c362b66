package handler

import (
	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// OfferingHandler handles the shop's service menu (washes, polishing, ...)
type OfferingHandler struct {
	offeringService *service.OfferingService
}

func NewOfferingHandler(offeringService *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

func (h *OfferingHandler) List(c *gin.Context) {
	var req request.ListRequest
	if !bindQuery(c, &req) {
		return
	}

	result, err := h.offeringService.List(c.Request.Context(), &pagination.PaginationParams{
		Page:    req.Page,
		PerPage: req.PerPage,
	}, req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Services retrieved successfully", result)
}

func (h *OfferingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}

	svc, err := h.offeringService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

func (h *OfferingHandler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.offeringService.Create(c.Request.Context(), &service.CreateOfferingInput{
		UserID:      sess.UserID(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Discount:    req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}

	var req request.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.offeringService.Update(c.Request.Context(), &service.UpdateOfferingInput{
		ID:          id,
		EditedBy:    sess.Name(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Discount:    req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

func (h *OfferingHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}

	if err := h.offeringService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service deleted successfully", nil)
}
