package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

// Format is the file type of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Shipments"

// Header is the column layout shared by both formats.
var Header = []string{
	"Shipment Code",
	"Recipient",
	"Total Amount",
	"Shipping Fee",
	"Payment Source",
	"Issuing Company",
	"Shipment Date",
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// Filename returns the download name for an export taken on the given day.
func (f Format) Filename(at time.Time) string {
	return fmt.Sprintf("shipments_%s.%s", at.Format(time.DateOnly), f)
}

// Service writes shipment listings as spreadsheet files.
type Service struct {
	shipments *shipment.Service
}

func NewService(shipments *shipment.Service) *Service {
	return &Service{shipments: shipments}
}

// Export lists shipments matching filter and writes them to w in the given
// format. It returns the number of exported rows.
func (s *Service) Export(ctx context.Context, filter shipment.Filter, format Format, w io.Writer) (int, error) {
	shipments, err := s.shipments.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing shipments: %w", err)
	}

	switch format {
	case FormatCSV:
		err = writeCSV(w, shipments)
	case FormatXLSX:
		err = writeXLSX(w, shipments)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}

	if err != nil {
		return 0, err
	}

	return len(shipments), nil
}

func record(sh *shipment.Shipment) []string {
	return []string{
		sh.Code,
		sh.RecipientName,
		sh.TotalAmount.String(),
		sh.ShippingFee.String(),
		string(sh.PaymentSource),
		sh.IssuingCompany,
		sh.Date.Format(time.DateOnly),
	}
}

func writeCSV(w io.Writer, shipments []*shipment.Shipment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, sh := range shipments {
		if err := cw.Write(record(sh)); err != nil {
			return fmt.Errorf("writing csv row %s: %w", sh.Code, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func writeXLSX(w io.Writer, shipments []*shipment.Shipment) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, sh := range shipments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}

		row := []any{
			sh.Code,
			sh.RecipientName,
			sh.TotalAmount.InexactFloat64(),
			sh.ShippingFee.InexactFloat64(),
			string(sh.PaymentSource),
			sh.IssuingCompany,
			sh.Date.Format(time.DateOnly),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %s: %w", sh.Code, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}

	return nil
}
