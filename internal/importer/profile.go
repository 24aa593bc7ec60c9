package importer

import "github.com/MrJamesThe3rd/shiptrack/internal/shipment"

// Profile describes the column headers of a shipment CSV layout.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name      string
	CodeCol   string
	NameCol   string
	AmountCol string
	FeeCol    string
	SourceCol string
	IssuerCol string
	DateCol   string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.CodeCol, p.AmountCol, p.DateCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:      "export",
		CodeCol:   "Shipment Code",
		NameCol:   "Recipient",
		AmountCol: "Total Amount",
		FeeCol:    "Shipping Fee",
		SourceCol: "Payment Source",
		IssuerCol: "Issuing Company",
		DateCol:   "Shipment Date",
	},
	{
		Name:      "sevkiyat",
		CodeCol:   "Sevkiyat ID",
		NameCol:   "Ad Soyad",
		AmountCol: "Toplam Tutar",
		FeeCol:    "Nakliye Ücreti",
		SourceCol: "Ödeme Kaynağı",
		IssuerCol: "Sevk Eden Firma",
		DateCol:   "Sevk Tarihi",
	},
}

// paymentSources maps accepted spellings, lower-cased, to payment sources.
var paymentSources = map[string]shipment.PaymentSource{
	"company":  shipment.PaymentSourceCompany,
	"firma":    shipment.PaymentSourceCompany,
	"şirket":   shipment.PaymentSourceCompany,
	"customer": shipment.PaymentSourceCustomer,
	"müşteri":  shipment.PaymentSourceCustomer,
}

// dateLayouts are tried in order for the date column.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
}
