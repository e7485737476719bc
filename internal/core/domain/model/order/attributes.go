package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// OrderType classifies how a shipment must be handled in the network.
type OrderType string

const (
	TypeNormal         OrderType = "NORMAL"
	TypeHandleWithCare OrderType = "HANDLE_WITH_CARE"
	TypeByAir          OrderType = "BY_AIR"
	TypeByRoad         OrderType = "BY_ROAD"
)

func (t OrderType) Validate() error {
	switch t {
	case TypeNormal, TypeHandleWithCare, TypeByAir, TypeByRoad:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"orderType", fmt.Errorf("%q is not a valid order type", string(t)))
}

// Priority drives pricing multipliers and delivery-window compression.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"priority", fmt.Errorf("%q is not a valid priority", string(p)))
}

// DeliveryType selects the service level requested by the customer.
type DeliveryType string

const (
	DeliveryStandard  DeliveryType = "STANDARD"
	DeliveryExpress   DeliveryType = "EXPRESS"
	DeliveryScheduled DeliveryType = "SCHEDULED"
)

func (d DeliveryType) Validate() error {
	switch d {
	case DeliveryStandard, DeliveryExpress, DeliveryScheduled:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"deliveryType", fmt.Errorf("%q is not a valid delivery type", string(d)))
}

// PaymentMode is how the shipment is paid for.
type PaymentMode string

const (
	PaymentCOD     PaymentMode = "COD"
	PaymentPrepaid PaymentMode = "PREPAID"
	PaymentCredit  PaymentMode = "CREDIT"
)

func (m PaymentMode) Validate() error {
	switch m {
	case PaymentCOD, PaymentPrepaid, PaymentCredit:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"paymentMode", fmt.Errorf("%q is not a valid payment mode", string(m)))
}
