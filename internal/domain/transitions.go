package domain

// AllowedTransitions defines the valid status transitions.
// The key is the current status, and the value is a slice of valid target statuses.
var AllowedTransitions = map[string][]string{
	StatusAuthorizing: {
		StatusAuthorized,
		StatusProcessorDeclined,
	},
	StatusAuthorized: {
		StatusSubmittedForSettlement,
	},
	StatusProcessorDeclined:      {}, // Terminal
	StatusSubmittedForSettlement: {}, // Settled by the gateway, never here
	StatusSettlementFailed:       {},
	StatusGatewayRejected:        {},
	StatusVoided:                 {},
	StatusSettled:                {},
	StatusUnknown:                {},
	StatusFailed:                 {},
}

// CanTransition checks if a transition from one status to another is allowed.
func CanTransition(from, to string) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error if the transition is not allowed.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return NewInvalidTransitionError(from, to)
	}
	return nil
}
