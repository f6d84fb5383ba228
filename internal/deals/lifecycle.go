package deals

import (
	"fmt"

	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
)

// transitionRule is one row of the lifecycle table: which actor may perform
// the action, from which statuses, and what status results. Actions that do
// not change status (edit) or that end the deal's life (delete) carry the
// current status forward.
type transitionRule struct {
	actor        enums.Role
	from         []enums.DealStatus
	to           enums.DealStatus
	keepsStatus  bool
	clearsReason bool
}

// lifecycleTable is the single source of truth for deal status legality.
// DRAFT -> SUBMITTED -> PUBLISHED, with SUBMITTED -> REJECTED -> SUBMITTED
// as the recoverable loop and DRAFT -> deleted as the abandon edge.
var lifecycleTable = map[enums.DealAction]transitionRule{
	enums.DealActionEdit: {
		actor:       enums.RoleOwner,
		from:        []enums.DealStatus{enums.DealStatusDraft, enums.DealStatusRejected},
		keepsStatus: true,
	},
	enums.DealActionSubmit: {
		actor:        enums.RoleOwner,
		from:         []enums.DealStatus{enums.DealStatusDraft, enums.DealStatusRejected},
		to:           enums.DealStatusSubmitted,
		clearsReason: true,
	},
	enums.DealActionDelete: {
		actor:       enums.RoleOwner,
		from:        []enums.DealStatus{enums.DealStatusDraft},
		keepsStatus: true,
	},
	enums.DealActionApprove: {
		actor: enums.RoleAdmin,
		from:  []enums.DealStatus{enums.DealStatusSubmitted},
		to:    enums.DealStatusPublished,
	},
	enums.DealActionReject: {
		actor: enums.RoleAdmin,
		from:  []enums.DealStatus{enums.DealStatusSubmitted},
		to:    enums.DealStatusRejected,
	},
}

// Transition resolves the lifecycle table for one (status, action, actor)
// triple. It returns the resulting status, or a FORBIDDEN error when the
// actor may never perform the action, or a STATE_CONFLICT error when the
// deal's current status does not permit it. Callers apply the result only
// after the backing store acknowledges the change.
func Transition(current enums.DealStatus, action enums.DealAction, actor enums.Role) (enums.DealStatus, error) {
	rule, ok := lifecycleTable[action]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown deal action %q", action))
	}

	if actor != rule.actor {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("role %q may not %s deals", actor, action))
	}

	for _, status := range rule.from {
		if status == current {
			if rule.keepsStatus {
				return current, nil
			}
			return rule.to, nil
		}
	}

	return "", pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot %s a deal in status %s", action, current)).
		WithDetails(map[string]any{"status": current, "action": action})
}

// ClearsRejectionReason reports whether the action wipes a prior rejection
// reason. Only submit does: the owner gets a clean slate on resubmission.
func ClearsRejectionReason(action enums.DealAction) bool {
	rule, ok := lifecycleTable[action]
	return ok && rule.clearsReason
}
