package shipment

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Request is the body of both create and full-replace update calls.
type Request struct {
	ShipmentCode   string           `json:"shipmentCode"   validate:"required"`
	RecipientName  *string          `json:"recipientName"`
	TotalAmount    *decimal.Decimal `json:"totalAmount"    validate:"required"`
	ShippingFee    *decimal.Decimal `json:"shippingFee"`
	PaymentSource  *string          `json:"paymentSource"`
	IssuingCompany *string          `json:"issuingCompany"`
	ShipmentDate   string           `json:"shipmentDate"   validate:"required,datetime=2006-01-02"`
}

func (req Request) Validate() error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}

// Params assumes Validate has passed.
func (req Request) Params() shipment.Params {
	date, _ := time.Parse(time.DateOnly, req.ShipmentDate)

	p := shipment.Params{
		Code:           req.ShipmentCode,
		RecipientName:  deref(req.RecipientName),
		TotalAmount:    *req.TotalAmount,
		PaymentSource:  shipment.PaymentSource(deref(req.PaymentSource)),
		IssuingCompany: deref(req.IssuingCompany),
		Date:           date,
	}

	if req.ShippingFee != nil {
		p.ShippingFee = *req.ShippingFee
	}

	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
