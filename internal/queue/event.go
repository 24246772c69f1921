// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderLineEvent is one checkout line inside an OrderPlacedEvent.
type OrderLineEvent struct {
	FoodItemID  uint64 `json:"food_item_id"`
	FoodCourtID uint64 `json:"food_court_id"`
	Quantity    int64  `json:"quantity"`
}

// OrderPlacedEvent is published after a checkout commits. It carries enough
// information for downstream consumers to log receipts or notify vendors
// without querying the primary database.
type OrderPlacedEvent struct {
	UserID     uint64           `json:"user_id"`
	UserMail   string           `json:"user_mail"`
	UniqueCode string           `json:"unique_code"`
	Payment    string           `json:"payment"`
	Status     string           `json:"status"`
	Lines      []OrderLineEvent `json:"lines"`
	PlacedAt   string           `json:"placed_at"`
}
