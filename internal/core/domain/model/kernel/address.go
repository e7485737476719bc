package kernel

import (
	"errors"
	"regexp"
	"strconv"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates that an Address was created without the NewAddress constructor.
var ErrAddressIsNotConstructed = errors.New("address must be created via NewAddress")

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Address is a value object holding a postal contact point within the
// serviceable pincode space. It is immutable after construction.
type Address struct {
	name         string
	phone        string
	addressLine1 string
	addressLine2 string
	city         string
	state        string
	pincode      string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. The pincode must be a six digit
// code that does not start with zero. Name, phone, addressLine1, city and
// state are required; addressLine2 may be empty.
func NewAddress(name, phone, addressLine1, addressLine2, city, state, pincode string) (Address, error) {
	if name == "" {
		return Address{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return Address{}, errs.NewValueIsRequiredError("phone")
	}
	if addressLine1 == "" {
		return Address{}, errs.NewValueIsRequiredError("addressLine1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if state == "" {
		return Address{}, errs.NewValueIsRequiredError("state")
	}
	if !pincodeRe.MatchString(pincode) {
		return Address{}, errs.NewValueIsInvalidError("pincode")
	}

	return Address{
		name:         name,
		phone:        phone,
		addressLine1: addressLine1,
		addressLine2: addressLine2,
		city:         city,
		state:        state,
		pincode:      pincode,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (a Address) Name() string         { return a.name }
func (a Address) Phone() string        { return a.phone }
func (a Address) AddressLine1() string { return a.addressLine1 }
func (a Address) AddressLine2() string { return a.addressLine2 }
func (a Address) City() string         { return a.city }
func (a Address) State() string        { return a.state }
func (a Address) Pincode() string      { return a.pincode }

// PincodeValue returns the pincode as an integer for distance arithmetic.
func (a Address) PincodeValue() int {
	v, _ := strconv.Atoi(a.pincode)
	return v
}

// Equals compares two addresses field by field.
func (a Address) Equals(other Address) bool {
	return a.name == other.name &&
		a.phone == other.phone &&
		a.addressLine1 == other.addressLine1 &&
		a.addressLine2 == other.addressLine2 &&
		a.city == other.city &&
		a.state == other.state &&
		a.pincode == other.pincode
}

// IsValid reports whether the Address was created through NewAddress.
func (a Address) IsValid() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// IsValidPincode reports whether s is a serviceable six digit pincode.
func IsValidPincode(s string) bool {
	return pincodeRe.MatchString(s)
}
