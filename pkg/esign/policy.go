// Package esign holds the pure rules of the signing state machine: signing
// order eligibility, send readiness and field value checks. It has no
// knowledge of storage or transport so every rule is testable on plain
// values.
package esign

import (
	"slices"

	"github.com/rithvisal/inksign/internal/constant"
)

// SignerState is the slice of a signer the policy rules need.
type SignerState struct {
	ID     string
	Status constant.SignerStatus
}

// EligibleSigners returns the ids of the signers that may currently act.
//
// With sequential mode off every pending signer is eligible. With sequential
// mode on only the earliest pending signer in order is eligible; signers
// absent from order are never eligible while sequential mode is on, which is
// why send validation requires the order to cover all signers.
func EligibleSigners(signers []SignerState, order []string, sequentialEnabled bool) []string {
	if !sequentialEnabled {
		var eligible []string
		for _, s := range signers {
			if s.Status == constant.SignerStatusPending {
				eligible = append(eligible, s.ID)
			}
		}
		return eligible
	}

	byID := make(map[string]SignerState, len(signers))
	for _, s := range signers {
		byID[s.ID] = s
	}

	for _, id := range order {
		s, ok := byID[id]
		if !ok {
			// Stale entry, e.g. the signer was deleted after the order was
			// configured. Skip it rather than blocking everyone behind it.
			continue
		}
		if s.Status == constant.SignerStatusPending {
			return []string{s.ID}
		}
	}

	return nil
}

// IsEligible reports whether the given signer may currently act.
func IsEligible(signers []SignerState, order []string, sequentialEnabled bool, signerID string) bool {
	return slices.Contains(EligibleSigners(signers, order, sequentialEnabled), signerID)
}

// CanEditStructure reports whether fields and signers may still be added,
// changed or removed. Structure is frozen the moment the document leaves
// draft; a pending document only accepts field completions through signing
// sessions.
func CanEditStructure(status constant.DocumentStatus) bool {
	return status == constant.DocumentStatusDraft
}

// CanReorder reports whether the signing order may still be replaced. The
// order is editable in draft and while the document is pending, but becomes
// fixed as soon as the first signer completes.
func CanReorder(status constant.DocumentStatus, signers []SignerState) bool {
	if status == constant.DocumentStatusCompleted {
		return false
	}

	for _, s := range signers {
		if s.Status == constant.SignerStatusCompleted {
			return false
		}
	}

	return true
}
