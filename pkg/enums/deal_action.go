package enums

import "fmt"

// DealAction names a lifecycle operation requested against a deal.
type DealAction string

const (
	DealActionCreate  DealAction = "create"
	DealActionEdit    DealAction = "edit"
	DealActionSubmit  DealAction = "submit"
	DealActionDelete  DealAction = "delete"
	DealActionApprove DealAction = "approve"
	DealActionReject  DealAction = "reject"
)

var validDealActions = []DealAction{
	DealActionCreate,
	DealActionEdit,
	DealActionSubmit,
	DealActionDelete,
	DealActionApprove,
	DealActionReject,
}

// String implements fmt.Stringer.
func (d DealAction) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DealAction.
func (d DealAction) IsValid() bool {
	for _, candidate := range validDealActions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDealAction converts raw input into a DealAction.
func ParseDealAction(value string) (DealAction, error) {
	for _, candidate := range validDealActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deal action %q", value)
}
