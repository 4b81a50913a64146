// Package queue defines message payloads exchanged over the message broker.
package queue

// Event type discriminators carried in the "type" field of every payload so
// a single queue can transport both event kinds.
const (
	TypeItemReported = "item.reported"
	TypeClaimDecided = "claim.decided"
)

// ItemReportedEvent is published when a new lost/found report is created.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type ItemReportedEvent struct {
	Type       string `json:"type"`
	ItemID     uint64 `json:"item_id"`
	OwnerID    uint64 `json:"owner_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	ReportedAt string `json:"reported_at"`
}

// ClaimDecidedEvent is published when an item owner approves or rejects an
// ownership claim.
type ClaimDecidedEvent struct {
	Type       string `json:"type"`
	ClaimID    uint64 `json:"claim_id"`
	ItemID     uint64 `json:"item_id"`
	ItemTitle  string `json:"item_title"`
	ClaimantID uint64 `json:"claimant_id"`
	DeciderID  uint64 `json:"decider_id"`
	Status     string `json:"status"`
	DecidedAt  string `json:"decided_at"`
}
