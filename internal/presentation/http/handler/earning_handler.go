package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carwash-api/internal/application/service"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/presentation/http/dto/response"
)

// EarningHandler handles washer earning HTTP requests
type EarningHandler struct {
	earningService *service.EarningService
	reportService  *service.ReportService
}

// NewEarningHandler creates a new earning handler
func NewEarningHandler(earningService *service.EarningService, reportService *service.ReportService) *EarningHandler {
	return &EarningHandler{
		earningService: earningService,
		reportService:  reportService,
	}
}

// ListByWasher handles one washer's earning history with totals
func (h *EarningHandler) ListByWasher(c *gin.Context) {
	washerID, ok := parseUUIDParam(c, "washerId")
	if !ok {
		response.BadRequest(c, "Invalid washer id")
		return
	}

	params := &repository.EarningFilterParams{
		Pagination: bindPagination(c),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseEarningStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	result, err := h.earningService.ListByWasher(c.Request.Context(), washerID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Earnings retrieved successfully", result)
}

// ListByOrder handles listing the earnings of one order
func (h *EarningHandler) ListByOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	earnings, err := h.earningService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Earnings retrieved successfully", earnings)
}

// MarkPaidInput selects the earnings to settle. PaidAt back-dates the
// settlement; absent, the server time is used.
type MarkPaidInput struct {
	IDs    []uint     `json:"ids" binding:"required,min=1"`
	PaidAt *time.Time `json:"paid_at"`
}

// MarkPaid handles settling pending earnings
func (h *EarningHandler) MarkPaid(c *gin.Context) {
	var input MarkPaidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	count, err := h.earningService.MarkAsPaid(c.Request.Context(), input.IDs, input.PaidAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Earnings marked as paid", gin.H{"paid_count": count})
}

// Export handles downloading one washer's earnings as an xlsx workbook
func (h *EarningHandler) Export(c *gin.Context) {
	washerID, ok := parseUUIDParam(c, "washerId")
	if !ok {
		response.BadRequest(c, "Invalid washer id")
		return
	}

	workbook, err := h.reportService.EarningsWorkbook(
		c.Request.Context(),
		washerID,
		parseDateQuery(c, "start_date"),
		parseDateQuery(c, "end_date"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("earnings-%s-%s.xlsx", washerID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
