package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carwash-api/internal/application/service"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService  *service.OrderService
	reportService *service.ReportService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, reportService *service.ReportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		reportService: reportService,
	}
}

// Create handles vehicle check-in
func (h *OrderHandler) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &input, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}
	if vehicleIDStr := c.Query("vehicle_id"); vehicleIDStr != "" {
		if vehicleID, err := strconv.ParseUint(vehicleIDStr, 10, 32); err == nil {
			id := uint(vehicleID)
			params.VehicleID = &id
		}
	}
	if washerIDStr := c.Query("washer_id"); washerIDStr != "" {
		if washerID, err := uuid.Parse(washerIDStr); err == nil {
			params.WasherID = &washerID
		}
	}

	result, err := h.orderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved successfully", result)
}

// Get handles fetching one order with full details
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Transition handles status changes, keyed by the order's public UUID
func (h *OrderHandler) Transition(c *gin.Context) {
	publicID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order uuid")
		return
	}

	var input service.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.Transition(c.Request.Context(), publicID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", result)
}

// RecordPayment handles settlement submissions against an order
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	publicID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order uuid")
		return
	}

	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.RecordPayment(c.Request.Context(), publicID, &req, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result.Message, result.Order)
}

// Portal handles the public client-facing order lookup
func (h *OrderHandler) Portal(c *gin.Context) {
	publicID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order uuid")
		return
	}

	order, err := h.orderService.GetByPublicID(c.Request.Context(), publicID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Receipt handles rendering the order receipt as a PDF download
func (h *OrderHandler) Receipt(c *gin.Context) {
	publicID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order uuid")
		return
	}

	pdf, err := h.reportService.Receipt(c.Request.Context(), publicID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", publicID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Delete handles removing an order and its dependents
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
