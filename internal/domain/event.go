package domain

// EventType defines the type of activity event.
type EventType string

const (
	EventOrderProcessing EventType = "order_processing"
	EventOrderCompleted  EventType = "order_completed"
	EventUserJoined      EventType = "user_joined"
)

// Event is one entry of the activity log and of the merged feed. Fields
// are event-specific; absent ones are omitted on the wire. Events are
// append-only and never rewritten.
type Event struct {
	Timestamp string    `json:"timestamp"`
	Type      EventType `json:"type"`

	// Order lifecycle events.
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`

	// Profile events synthesized into the feed.
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// OrderEvent builds an order lifecycle event stamped now.
func OrderEvent(typ EventType, orderID string, status OrderStatus) Event {
	return Event{
		Timestamp: Timestamp(),
		Type:      typ,
		OrderID:   orderID,
		Status:    string(status),
	}
}

// JoinedEvent synthesizes the feed entry for an existing profile. The
// timestamp is the profile's creation time, not now: the feed re-derives
// these on every read.
func JoinedEvent(p Profile) Event {
	return Event{
		Timestamp: p.CreatedAt,
		Type:      EventUserJoined,
		UserID:    p.ID,
		Username:  p.Username,
		Bio:       p.Bio,
	}
}
