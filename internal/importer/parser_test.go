package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/shiptrack/internal/importer"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_ExportLayout(t *testing.T) {
	csv := `Shipment Code,Recipient,Total Amount,Shipping Fee,Payment Source,Issuing Company,Shipment Date
S2,"Mehmet, Kaya",249.9,12.5,Customer,Aras Kargo,2024-01-11
S1,,100,0,,,2024-01-10
`

	params, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "S2", params[0].Code)
	assert.Equal(t, "Mehmet, Kaya", params[0].RecipientName)
	assert.Equal(t, "249.9", params[0].TotalAmount.String())
	assert.Equal(t, "12.5", params[0].ShippingFee.String())
	assert.Equal(t, shipment.PaymentSourceCustomer, params[0].PaymentSource)
	assert.Equal(t, "Aras Kargo", params[0].IssuingCompany)
	assert.Equal(t, date(2024, 1, 11), params[0].Date)

	assert.Equal(t, "S1", params[1].Code)
	assert.Empty(t, params[1].RecipientName)
	assert.True(t, params[1].ShippingFee.IsZero())
	assert.Empty(t, params[1].PaymentSource)
}

func TestParser_DashboardLayoutSemicolonWindows1254(t *testing.T) {
	csv := "Sevkiyat ID;Ad Soyad;Toplam Tutar;Nakliye Ücreti;Ödeme Kaynağı;Sevk Eden Firma;Sevk Tarihi\n" +
		"TR-001;Ayşe Yılmaz;1.234,56 ₺;45,00;Müşteri;Yurtiçi;10.01.2024\n" +
		";;;;;;\n" +
		"TR-002;İsmail Şahin;80;;Firma;;2024-01-12\n"

	encoded, err := charmap.Windows1254.NewEncoder().String(strings.Replace(csv, " ₺", " TL", 1))
	require.NoError(t, err)

	params, err := importer.NewParser().Parse(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "TR-001", params[0].Code)
	assert.Equal(t, "Ayşe Yılmaz", params[0].RecipientName)
	assert.Equal(t, "1234.56", params[0].TotalAmount.String())
	assert.Equal(t, "45", params[0].ShippingFee.String())
	assert.Equal(t, shipment.PaymentSourceCustomer, params[0].PaymentSource)
	assert.Equal(t, date(2024, 1, 10), params[0].Date)

	assert.Equal(t, "İsmail Şahin", params[1].RecipientName)
	assert.Equal(t, shipment.PaymentSourceCompany, params[1].PaymentSource)
	assert.True(t, params[1].ShippingFee.IsZero())
	assert.Equal(t, date(2024, 1, 12), params[1].Date)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "UnknownLayout",
			csv:     "Date,Description,Amount\n2024-01-01,foo,1\n",
			wantErr: importer.ErrUnknownLayout.Error(),
		},
		{
			name:    "MissingCode",
			csv:     "Shipment Code,Total Amount,Shipment Date\n,10,2024-01-01\n",
			wantErr: "line 2: missing shipment code",
		},
		{
			name:    "BadAmount",
			csv:     "Shipment Code,Total Amount,Shipment Date\nS1,ten,2024-01-01\n",
			wantErr: `line 2: invalid total amount "ten"`,
		},
		{
			name:    "BadDate",
			csv:     "Shipment Code,Total Amount,Shipment Date\nS1,10,yesterday\n",
			wantErr: `line 2: invalid shipment date "yesterday"`,
		},
		{
			name:    "BadPaymentSource",
			csv:     "Shipment Code,Total Amount,Payment Source,Shipment Date\nS1,10,Courier,2024-01-01\n",
			wantErr: `line 2: unknown payment source "Courier"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_ImportRejectsRepeatedCodes(t *testing.T) {
	csv := "Shipment Code,Total Amount,Shipment Date\nS1,10,2024-01-01\nS1,20,2024-01-02\n"

	_, err := importer.NewService().Import(strings.NewReader(csv))
	assert.ErrorIs(t, err, shipment.ErrDuplicateCode)
}

func TestService_Import(t *testing.T) {
	csv := "Shipment Code,Total Amount,Shipment Date\nS1,10,2024-01-01\nS2,20,2024-01-02\n"

	params, err := importer.NewService().Import(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, params, 2)
}
