package model

import (
	"strings"
	"time"
)

// ItemStatus is the lifecycle state of a reported item.  Status writes by
// the owner (or an admin) are deliberately unrestricted between known
// values; only the claim-approval cascade forces a specific transition
// (any state -> StatusClaimed).
type ItemStatus string

const (
	StatusLost     ItemStatus = "lost"
	StatusFound    ItemStatus = "found"
	StatusClaimed  ItemStatus = "claimed"
	StatusReturned ItemStatus = "returned"
)

// ParseItemStatus normalises and validates a status string.  The empty
// string is not valid; callers decide whether absence means "default to
// lost" (creation) or "leave unchanged" (partial update).
func ParseItemStatus(s string) (ItemStatus, bool) {
	switch ItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusLost:
		return StatusLost, true
	case StatusFound:
		return StatusFound, true
	case StatusClaimed:
		return StatusClaimed, true
	case StatusReturned:
		return StatusReturned, true
	}
	return "", false
}

// Item represents a row in the `items` table.  OwnerID references users.id
// but carries no database-level constraint; the owner never changes after
// creation.
type Item struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Status      ItemStatus `json:"status"`
	ImageURL    string     `json:"image_url,omitempty"`
	OwnerID     uint64     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Owner       *UserRef   `json:"owner,omitempty"` // populated on read paths, nil when the owner row is gone
}
