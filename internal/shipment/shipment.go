package shipment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("shipment not found")
	ErrDuplicateCode = errors.New("shipment code already in use")
)

// PaymentSource records who pays for the shipment. The zero value means unknown.
type PaymentSource string

const (
	PaymentSourceCompany  PaymentSource = "Company"
	PaymentSourceCustomer PaymentSource = "Customer"
)

// Shipment is a single tracked shipment record.
type Shipment struct {
	ID             int64
	Code           string
	RecipientName  string
	TotalAmount    decimal.Decimal
	ShippingFee    decimal.Decimal
	PaymentSource  PaymentSource
	IssuingCompany string
	Date           time.Time // calendar date, time part is always midnight UTC
	CreatedAt      time.Time
}

// Params is the full, client supplied field set of a shipment. It is used for
// both creation and full-replace updates.
type Params struct {
	Code           string
	RecipientName  string
	TotalAmount    decimal.Decimal
	ShippingFee    decimal.Decimal
	PaymentSource  PaymentSource
	IssuingCompany string
	Date           time.Time
}

func (p Params) toShipment() *Shipment {
	return &Shipment{
		Code:           p.Code,
		RecipientName:  p.RecipientName,
		TotalAmount:    p.TotalAmount,
		ShippingFee:    p.ShippingFee,
		PaymentSource:  p.PaymentSource,
		IssuingCompany: p.IssuingCompany,
		Date:           p.Date,
	}
}
