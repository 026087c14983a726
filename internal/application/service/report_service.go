package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/money"
	"carwash-api/pkg/pagination"
)

// ReportService renders downloadable documents: the washer earnings workbook
// and the order receipt.
type ReportService struct {
	orderRepo   repository.OrderRepository
	earningRepo repository.EarningRepository
	userRepo    repository.UserRepository
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo repository.OrderRepository,
	earningRepo repository.EarningRepository,
	userRepo repository.UserRepository,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		earningRepo: earningRepo,
		userRepo:    userRepo,
	}
}

// EarningsWorkbook renders one washer's earnings in the window as an xlsx
// workbook.
func (s *ReportService) EarningsWorkbook(ctx context.Context, washerID uuid.UUID, from, to *time.Time) ([]byte, error) {
	washer, err := s.userRepo.GetByID(ctx, washerID)
	if err != nil {
		return nil, err
	}
	if washer == nil {
		return nil, apperror.NewNotFoundError("Washer")
	}

	params := &repository.EarningFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		StartDate:  from,
		EndDate:    to,
	}

	var earnings []entity.Earning
	for {
		page, total, err := s.earningRepo.ListByWasher(ctx, washerID, params)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, page...)
		if int64(len(earnings)) >= total || len(page) == 0 {
			break
		}
		params.Pagination.Page++
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Earnings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Earning ID", "Order ID", "Status", "Commission (USD)", "Earned At", "Paid At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var totalCents int64
	for row, e := range earnings {
		values := []interface{}{
			e.ID,
			e.OrderID,
			e.Status.String(),
			money.CentsToDecimal(e.CommissionCents),
			e.EarnedAt.Format(time.RFC3339),
			"",
		}
		if e.PaidAt != nil {
			values[5] = e.PaidAt.Format(time.RFC3339)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
		totalCents += e.CommissionCents
	}

	summaryRow := len(earnings) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Washer")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), washer.Name)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Total (USD)")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), money.CentsToDecimal(totalCents))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Receipt renders an order receipt as a PDF
func (s *ReportService) Receipt(ctx context.Context, publicID uuid.UUID) ([]byte, error) {
	order, err := s.orderRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Car Wash Receipt")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Order #%d  -  %s", order.ID, order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Vehicle: %s", order.Vehicle.Plate))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", order.Status.String()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, "Service", "B", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Price (USD)", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(120, 7, item.ServiceName, "", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", money.CentsToDecimal(item.PriceCents)), "", 1, "R", false, 0, "")
	}
	if order.DeliveryFeeCents > 0 {
		pdf.CellFormat(120, 7, "Delivery fee", "", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", money.CentsToDecimal(order.DeliveryFeeCents)), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Total", "T", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", money.CentsToDecimal(order.TotalCents)), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	if len(order.Payments) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Payments")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, p := range order.Payments {
			line := fmt.Sprintf("%s %s  %.2f", p.Method.String(), p.Currency.String(), money.CentsToDecimal(p.AmountCents))
			if p.ExchangeRate != 1 {
				line += fmt.Sprintf("  (rate %.2f, $%.2f)", p.ExchangeRate, money.CentsToDecimal(p.AmountUSDCents))
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	if order.ChangeCents != nil && order.ChangeCurrency != nil {
		pdf.Ln(2)
		pdf.Cell(0, 6, fmt.Sprintf("Change: %s %.2f", order.ChangeCurrency.String(), money.CentsToDecimal(*order.ChangeCents)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
