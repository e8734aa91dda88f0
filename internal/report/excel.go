package report

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"biztrack/internal/core"
)

// ExportService renders ledger data as a spreadsheet.
type ExportService interface {
	WriteWorkbook(ctx context.Context, w io.Writer) error
}

type exportService struct {
	store   *core.Store
	metrics core.MetricsService
}

// NewExportService builds an ExportService over the given store.
func NewExportService(store *core.Store, metrics core.MetricsService) ExportService {
	return &exportService{store: store, metrics: metrics}
}

// WriteWorkbook generates a workbook with Sales, Inventory, Expenses and
// Summary sheets and writes it to w.
func (s *exportService) WriteWorkbook(ctx context.Context, w io.Writer) error {
	snap := s.store.Snapshot()
	metrics, err := s.metrics.Compute(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSalesSheet(f, snap); err != nil {
		return err
	}
	if err := writeInventorySheet(f, snap); err != nil {
		return err
	}
	if err := writeExpensesSheet(f, snap); err != nil {
		return err
	}
	if err := writeSummarySheet(f, snap, metrics); err != nil {
		return err
	}

	// Replace the default sheet with Sales as the first tab.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Sales"); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSalesSheet(f *excelize.File, snap core.StateSnapshot) error {
	const sheet = "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Date", "Product", "Quantity", "Unit Price", "Revenue", "Cost", "Platform", "Platform Fee", "Delivery", "Profit", "Status", "Customer Phone", "Location"}
	writeHeaderRow(f, sheet, headers)

	for rowIdx, sale := range snap.Sales {
		values := []interface{}{
			sale.Date.Format("2006-01-02"),
			sale.ProductName,
			sale.Quantity,
			sale.SellingPriceSnapshot.InexactFloat64(),
			sale.Revenue.InexactFloat64(),
			sale.TotalCost.InexactFloat64(),
			sale.Platform,
			sale.PlatformFee.InexactFloat64(),
			sale.DeliveryCharge.InexactFloat64(),
			sale.Profit.InexactFloat64(),
			string(sale.Status),
			sale.CustomerPhone,
			sale.Location,
		}
		writeRow(f, sheet, rowIdx+2, values)
	}

	f.SetColWidth(sheet, "A", "B", 20)
	f.SetColWidth(sheet, "C", "K", 12)
	f.SetColWidth(sheet, "L", "M", 18)
	return nil
}

func writeInventorySheet(f *excelize.File, snap core.StateSnapshot) error {
	const sheet = "Inventory"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"SKU", "Name", "Stock", "Buying Price", "Selling Price", "Stock Value"}
	writeHeaderRow(f, sheet, headers)

	for rowIdx, p := range snap.Products {
		stockValue := p.BuyingPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
		values := []interface{}{
			p.SKU,
			p.Name,
			p.Stock,
			p.BuyingPrice.InexactFloat64(),
			p.SellingPrice.InexactFloat64(),
			stockValue.InexactFloat64(),
		}
		writeRow(f, sheet, rowIdx+2, values)
	}

	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "C", "F", 14)
	return nil
}

func writeExpensesSheet(f *excelize.File, snap core.StateSnapshot) error {
	const sheet = "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Date", "Category", "Description", "Amount"}
	writeHeaderRow(f, sheet, headers)

	for rowIdx, e := range snap.Expenses {
		values := []interface{}{
			e.Date.Format("2006-01-02"),
			string(e.Category),
			e.Description,
			e.Amount.InexactFloat64(),
		}
		writeRow(f, sheet, rowIdx+2, values)
	}

	f.SetColWidth(sheet, "A", "B", 16)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "D", 12)
	return nil
}

func writeSummarySheet(f *excelize.File, snap core.StateSnapshot, metrics core.DashboardMetrics) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Sales", metrics.TotalSales.InexactFloat64()},
		{"Total Profit", metrics.TotalProfit.InexactFloat64()},
		{"Total Expenses", metrics.TotalExpenses.InexactFloat64()},
		{"Net Profit", metrics.NetProfit.InexactFloat64()},
		{"Total Refunds", metrics.TotalRefunds.InexactFloat64()},
		{"Platform Fees", metrics.TotalPlatformFees.InexactFloat64()},
		{"Stock Value", metrics.StockValue.InexactFloat64()},
		{"Products", len(snap.Products)},
		{"Sales Records", len(snap.Sales)},
		{"Currency", snap.Settings.Currency},
	}
	for rowIdx, values := range rows {
		writeRow(f, sheet, rowIdx+1, values)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 16)
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for colIdx, value := range values {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheet, cell, value)
	}
}
