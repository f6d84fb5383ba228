package enums

import "fmt"

// DealType tags a deal with its fulfillment style.
type DealType string

const (
	DealTypeLunch    DealType = "Lunch"
	DealTypeCarryout DealType = "Carryout"
	DealTypeDelivery DealType = "Delivery"
	DealTypeOther    DealType = "Other"
)

var validDealTypes = []DealType{
	DealTypeLunch,
	DealTypeCarryout,
	DealTypeDelivery,
	DealTypeOther,
}

func (d DealType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DealType.
func (d DealType) IsValid() bool {
	for _, candidate := range validDealTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDealType converts raw input into a DealType.
func ParseDealType(value string) (DealType, error) {
	for _, candidate := range validDealTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deal type %q", value)
}
