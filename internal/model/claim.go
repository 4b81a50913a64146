package model

import (
	"strings"
	"time"
)

// ClaimStatus is the decision state of an ownership claim.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// ParseClaimStatus normalises and validates a claim status string.
func ParseClaimStatus(s string) (ClaimStatus, bool) {
	switch ClaimStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ClaimPending:
		return ClaimPending, true
	case ClaimApproved:
		return ClaimApproved, true
	case ClaimRejected:
		return ClaimRejected, true
	}
	return "", false
}

// CanTransition reports whether moving from s to next follows the nominal
// claim lifecycle (pending -> approved, pending -> rejected).  The write
// path currently accepts any known status regardless of this table; the
// table exists so a stricter policy can be switched on without reworking
// callers.
func (s ClaimStatus) CanTransition(next ClaimStatus) bool {
	return s == ClaimPending && (next == ClaimApproved || next == ClaimRejected)
}

// Claim represents a row in the `claims` table.  ItemID and ClaimantID are
// soft references: the item may have been deleted after the claim was
// filed, in which case Item stays nil on joined reads.
type Claim struct {
	ID               uint64      `json:"id"`
	ItemID           uint64      `json:"item_id"`
	ClaimantID       uint64      `json:"claimant_id"`
	Status           ClaimStatus `json:"status"`
	ProofDescription string      `json:"proof_description,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	Claimant         *UserRef    `json:"claimant,omitempty"` // populated for item owners reviewing claims
	Item             *Item       `json:"item,omitempty"`     // populated on claimant-facing lists; nil when the item is gone
}
