package model

import "time"

// Reservation statuses.  A reservation starts PENDING, moves to
// CONFIRMED through an administrator action or to CANCELLED by the
// owning user.  Only a PENDING reservation may be confirmed.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// Reservation records a user's claim on a single stall.  The
// reservation service is authoritative; locally held copies are
// snapshots and may carry optimistic timestamps until the next fetch.
//
// Fields:
//  ID               – identifier assigned by the reservation service.
//  UserID           – user who made the reservation.
//  StallID          – stall being reserved.
//  ReservationDate  – scheduled date of the reservation.
//  ConfirmationDate – when the reservation was confirmed (nil while
//                     PENDING or CANCELLED).
//  Status           – PENDING, CONFIRMED or CANCELLED.
//  QRCode           – verification token, populated only once the
//                     reservation reaches CONFIRMED.
//  TotalAmount      – total price for the stall.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	StallID          int64      `json:"stallId"`
	ReservationDate  time.Time  `json:"reservationDate"`
	ConfirmationDate *time.Time `json:"confirmationDate"`
	Status           string     `json:"status"`
	QRCode           *string    `json:"qrCode"`
	TotalAmount      float64    `json:"totalAmount"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
