package esign

import (
	"github.com/rithvisal/inksign/internal/constant"
)

// FieldState is the slice of a signature field the readiness rules need.
type FieldState struct {
	ID         string
	AssignedTo string
	Required   bool
	Completed  bool
}

// Stable precondition codes carried inside not_ready errors. The UI maps
// them to specific messages, so they must not change meaning.
const (
	ReasonNoSigners        = "no_signers"
	ReasonNoFields         = "no_fields"
	ReasonUnassignedFields = "unassigned_fields"
	ReasonOrderIncomplete  = "order_incomplete"
	ReasonFieldsIncomplete = "fields_incomplete"
)

// SendReadiness checks the preconditions for sending a document out for
// signing and returns the codes of every precondition that fails, nil when
// the document is ready. A document is ready when it has at least one signer,
// at least one field, no unassigned field, and, when sequential mode is on,
// an order that lists every signer exactly once.
func SendReadiness(signers []SignerState, fields []FieldState, order []string, sequentialEnabled bool) []string {
	var reasons []string

	if len(signers) == 0 {
		reasons = append(reasons, ReasonNoSigners)
	}

	if len(fields) == 0 {
		reasons = append(reasons, ReasonNoFields)
	}

	for _, f := range fields {
		if f.AssignedTo == "" {
			reasons = append(reasons, ReasonUnassignedFields)
			break
		}
	}

	if sequentialEnabled && !orderCovers(signers, order) {
		reasons = append(reasons, ReasonOrderIncomplete)
	}

	return reasons
}

// orderCovers reports whether order lists every signer exactly once. Entries
// that refer to unknown signers also fail the check.
func orderCovers(signers []SignerState, order []string) bool {
	if len(order) != len(signers) {
		return false
	}

	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return false
		}
		seen[id] = true
	}

	for _, s := range signers {
		if !seen[s.ID] {
			return false
		}
	}

	return true
}

// IncompleteRequired returns the ids of every required field assigned to the
// given signer that has not been completed yet, in input order.
func IncompleteRequired(fields []FieldState, signerID string) []string {
	var incomplete []string
	for _, f := range fields {
		if f.AssignedTo == signerID && f.Required && !f.Completed {
			incomplete = append(incomplete, f.ID)
		}
	}

	return incomplete
}

// AllSignersCompleted reports whether every signer has finished. A document
// with no signers is never considered fully signed.
func AllSignersCompleted(signers []SignerState) bool {
	if len(signers) == 0 {
		return false
	}

	for _, s := range signers {
		if s.Status != constant.SignerStatusCompleted {
			return false
		}
	}

	return true
}
