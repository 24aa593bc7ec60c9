package shipment

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shiptrack/internal/report"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type Response struct {
	ID             int64       `json:"id,omitempty"`
	ShipmentCode   string      `json:"shipmentCode"`
	RecipientName  *string     `json:"recipientName"`
	TotalAmount    json.Number `json:"totalAmount"`
	ShippingFee    json.Number `json:"shippingFee"`
	PaymentSource  *string     `json:"paymentSource"`
	IssuingCompany *string     `json:"issuingCompany"`
	ShipmentDate   string      `json:"shipmentDate"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
}

func NewResponse(s *shipment.Shipment) Response {
	resp := Response{
		ID:             s.ID,
		ShipmentCode:   s.Code,
		RecipientName:  optional(s.RecipientName),
		TotalAmount:    number(s.TotalAmount),
		ShippingFee:    number(s.ShippingFee),
		PaymentSource:  optional(string(s.PaymentSource)),
		IssuingCompany: optional(s.IssuingCompany),
		ShipmentDate:   s.Date.Format(time.DateOnly),
	}

	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = new(s.CreatedAt)
	}

	return resp
}

// NewParamsResponse renders rows that are not stored yet. They carry no id and
// decode back into a Request unchanged.
func NewParamsResponse(p shipment.Params) Response {
	return Response{
		ShipmentCode:   p.Code,
		RecipientName:  optional(p.RecipientName),
		TotalAmount:    number(p.TotalAmount),
		ShippingFee:    number(p.ShippingFee),
		PaymentSource:  optional(string(p.PaymentSource)),
		IssuingCompany: optional(p.IssuingCompany),
		ShipmentDate:   p.Date.Format(time.DateOnly),
	}
}

func NewResponseList(shipments []*shipment.Shipment) []Response {
	resp := make([]Response, len(shipments))
	for i, s := range shipments {
		resp[i] = NewResponse(s)
	}

	return resp
}

type weekdayTotal struct {
	Day         string      `json:"day"`
	TotalAmount json.Number `json:"totalAmount"`
}

type summaryResponse struct {
	Count            int            `json:"count"`
	TotalAmount      json.Number    `json:"totalAmount"`
	AverageAmount    json.Number    `json:"averageAmount"`
	TotalShippingFee json.Number    `json:"totalShippingFee"`
	ByWeekday        []weekdayTotal `json:"byWeekday"`
}

func toSummaryResponse(s report.Summary) summaryResponse {
	resp := summaryResponse{
		Count:            s.Count,
		TotalAmount:      number(s.TotalAmount),
		AverageAmount:    number(s.AverageAmount),
		TotalShippingFee: number(s.TotalShippingFee),
		ByWeekday:        make([]weekdayTotal, len(s.ByWeekday)),
	}

	for i, total := range s.ByWeekday {
		resp.ByWeekday[i] = weekdayTotal{Day: report.WeekdayLabel(i), TotalAmount: number(total)}
	}

	return resp
}

// number keeps the exact decimal text on the wire instead of going through float64.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
