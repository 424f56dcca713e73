// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when an administrator confirms
// a reservation.  It carries enough information for downstream
// consumers to notify the stall holder without calling back into the
// reservation service.
type ReservationConfirmedEvent struct {
	EventID       string  `json:"event_id"`
	ReservationID int64   `json:"reservation_id"`
	UserID        int64   `json:"user_id"`
	StallID       int64   `json:"stall_id"`
	TotalAmount   float64 `json:"total_amount"`
	ConfirmedAt   string  `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a user cancels a
// reservation, releasing the stall.
type ReservationCancelledEvent struct {
	EventID       string `json:"event_id"`
	ReservationID int64  `json:"reservation_id"`
	UserID        int64  `json:"user_id"`
	StallID       int64  `json:"stall_id"`
	CancelledAt   string `json:"cancelled_at"`
}
