package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

// shipmentFields holds the string bindings of the create/edit form.
type shipmentFields struct {
	Code           string
	Recipient      string
	TotalAmount    string
	ShippingFee    string
	PaymentSource  string
	IssuingCompany string
	Date           string
}

func fieldsFromShipment(s *shipment.Shipment) shipmentFields {
	return shipmentFields{
		Code:           s.Code,
		Recipient:      s.RecipientName,
		TotalAmount:    s.TotalAmount.String(),
		ShippingFee:    s.ShippingFee.String(),
		PaymentSource:  string(s.PaymentSource),
		IssuingCompany: s.IssuingCompany,
		Date:           FormatDate(s.Date),
	}
}

func (f shipmentFields) params() (shipment.Params, error) {
	p := shipment.Params{
		Code:           strings.TrimSpace(f.Code),
		RecipientName:  strings.TrimSpace(f.Recipient),
		PaymentSource:  shipment.PaymentSource(f.PaymentSource),
		IssuingCompany: strings.TrimSpace(f.IssuingCompany),
	}

	if p.Code == "" {
		return p, errors.New("shipment code cannot be empty")
	}

	var err error

	p.TotalAmount, err = decimal.NewFromString(strings.TrimSpace(f.TotalAmount))
	if err != nil {
		return p, fmt.Errorf("invalid total amount %q", f.TotalAmount)
	}

	if fee := strings.TrimSpace(f.ShippingFee); fee != "" {
		p.ShippingFee, err = decimal.NewFromString(fee)
		if err != nil {
			return p, fmt.Errorf("invalid shipping fee %q", f.ShippingFee)
		}
	}

	p.Date, err = time.Parse(time.DateOnly, strings.TrimSpace(f.Date))
	if err != nil {
		return p, fmt.Errorf("invalid shipment date %q (YYYY-MM-DD)", f.Date)
	}

	return p, nil
}

func validateDecimal(optional bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && optional {
			return nil
		}

		if _, err := decimal.NewFromString(s); err != nil {
			return errors.New("enter a number like 249.90")
		}

		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func newShipmentForm(f *shipmentFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("code").
				Title("Shipment Code").
				Value(&f.Code).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("shipment code cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("recipient").
				Title("Recipient").
				Value(&f.Recipient),

			huh.NewInput().
				Key("total_amount").
				Title("Total Amount").
				Placeholder("0.00").
				Value(&f.TotalAmount).
				Validate(validateDecimal(false)),

			huh.NewInput().
				Key("shipping_fee").
				Title("Shipping Fee (optional)").
				Placeholder("0.00").
				Value(&f.ShippingFee).
				Validate(validateDecimal(true)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("payment_source").
				Title("Payment Source").
				Options(
					huh.NewOption("Unknown", ""),
					huh.NewOption("Company", string(shipment.PaymentSourceCompany)),
					huh.NewOption("Customer", string(shipment.PaymentSourceCustomer)),
				).
				Value(&f.PaymentSource),

			huh.NewInput().
				Key("issuing_company").
				Title("Issuing Company").
				Value(&f.IssuingCompany),

			huh.NewInput().
				Key("date").
				Title("Shipment Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)
}
