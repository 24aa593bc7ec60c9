package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/shiptrack/internal/encoding"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

var ErrUnknownLayout = errors.New("no matching shipment csv layout")

// Parser reads shipment CSV files in either the export layout or the
// original dashboard layout, detected from the header row.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]shipment.Params, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownLayout
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks ';' when the first non-empty line has more semicolons
// than commas, which is how spreadsheet software in comma-decimal locales
// saves CSV.
func sniffDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		break
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows using the profile's column mapping.
// lineOffset is the zero-based index of the first data row in the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, lineOffset int) ([]shipment.Params, error) {
	var params []shipment.Params

	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		line := lineOffset + i + 1

		param, err := parseRow(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		params = append(params, param)
	}

	return params, nil
}

func parseRow(p *Profile, cols colIndex, row []string) (shipment.Params, error) {
	get := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	param := shipment.Params{
		Code:           get(p.CodeCol),
		RecipientName:  get(p.NameCol),
		IssuingCompany: get(p.IssuerCol),
	}

	if param.Code == "" {
		return param, errors.New("missing shipment code")
	}

	amount, err := parseAmount(get(p.AmountCol))
	if err != nil {
		return param, fmt.Errorf("invalid total amount %q", get(p.AmountCol))
	}

	param.TotalAmount = amount

	if fee := get(p.FeeCol); fee != "" {
		param.ShippingFee, err = parseAmount(fee)
		if err != nil {
			return param, fmt.Errorf("invalid shipping fee %q", fee)
		}
	} else {
		param.ShippingFee = decimal.Zero
	}

	if src := get(p.SourceCol); src != "" {
		ps, ok := paymentSources[strings.ToLower(src)]
		if !ok {
			return param, fmt.Errorf("unknown payment source %q", src)
		}

		param.PaymentSource = ps
	}

	param.Date, err = parseDate(get(p.DateCol))
	if err != nil {
		return param, err
	}

	return param, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid shipment date %q", s)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
