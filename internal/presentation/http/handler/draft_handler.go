package handler

import (
	"strconv"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DraftHandler exposes the bill builder. Every route acts on a draft owned
// by the caller.
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	response.Created(c, "Draft created", h.draftService.Create(c.Request.Context(), sess.UserID()))
}

func (h *DraftHandler) Get(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), sess.UserID(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved", draft)
}

func (h *DraftHandler) Discard(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.draftService.Discard(c.Request.Context(), sess.UserID(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft discarded", nil)
}

// AddItem adds a catalog product or service, or bumps its quantity when it
// is already on the bill
func (h *DraftHandler) AddItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	kind, err := billing.ParseKind(req.Kind)
	if err != nil {
		response.BadRequest(c, "Item kind must be product or service")
		return
	}

	draft, err := h.draftService.AddCatalogItem(c.Request.Context(), sess.UserID(), c.Param("id"), kind, req.ID)
	h.reply(c, draft, err)
}

func (h *DraftHandler) AddCustomItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.AddCustomItemRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.AddCustomItem(
		c.Request.Context(), sess.UserID(), c.Param("id"),
		req.Name, billing.MoneyFromMajor(req.Price), req.Description,
	)
	h.reply(c, draft, err)
}

func (h *DraftHandler) RemoveItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	draft, err := h.draftService.RemoveItem(c.Request.Context(), sess.UserID(), c.Param("id"), index)
	h.reply(c, draft, err)
}

func (h *DraftHandler) SetQuantity(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	var req request.QuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.SetQuantity(c.Request.Context(), sess.UserID(), c.Param("id"), index, req.Quantity)
	h.reply(c, draft, err)
}

func (h *DraftHandler) SetItemDiscount(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	discount, err := billing.ParsePercent(req.Discount)
	if err != nil {
		response.Error(c, service.BillingAppError(err))
		return
	}

	draft, err := h.draftService.SetItemDiscount(
		c.Request.Context(), sess.UserID(), c.Param("id"), index, discount,
	)
	h.reply(c, draft, err)
}

func (h *DraftHandler) SetOverallDiscount(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	discount, err := billing.ParsePercent(req.Discount)
	if err != nil {
		response.Error(c, service.BillingAppError(err))
		return
	}

	draft, err := h.draftService.SetOverallDiscount(
		c.Request.Context(), sess.UserID(), c.Param("id"), discount,
	)
	h.reply(c, draft, err)
}

func (h *DraftHandler) SetHeader(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.HeaderRequest
	if !bindJSON(c, &req) {
		return
	}
	method, err := billing.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Payment method must be cash, card or upi")
		return
	}

	draft, err := h.draftService.SetHeader(c.Request.Context(), sess.UserID(), c.Param("id"), service.HeaderInput{
		Customer: billing.Customer{
			Name:          req.Customer.Name,
			Mobile:        req.Customer.Mobile,
			VehicleNumber: req.Customer.VehicleNumber,
			Company:       req.Customer.Company,
		},
		PaymentMethod: method,
		Notes:         req.Notes,
	})
	h.reply(c, draft, err)
}

// Finalize returns the bill the draft would submit without storing it
func (h *DraftHandler) Finalize(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	bill, err := h.draftService.Finalize(c.Request.Context(), sess.UserID(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill finalized", bill)
}

// Submit finalizes and stores the bill. With clear=true the draft is reset
// once the bill is stored.
func (h *DraftHandler) Submit(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	clear, _ := strconv.ParseBool(c.DefaultQuery("clear", "false"))
	receipt, err := h.draftService.Submit(c.Request.Context(), sess.UserID(), c.Param("id"), clear)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, receipt.Message, receipt)
}

func (h *DraftHandler) reply(c *gin.Context, draft *service.DraftView, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft updated", draft)
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Item index must be a number")
		return 0, false
	}
	return index, true
}
