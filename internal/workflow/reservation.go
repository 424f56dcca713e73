// Package workflow orchestrates the reservation lifecycle from the
// portal's side: browse → reserve → confirm → QR issuance → cancel.
// The remote reservation service is authoritative; the controller keeps
// a local snapshot that it mutates only after a request succeeds, so a
// failed action never leaves partial state behind.
package workflow

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/queue"
)

var (
	// ErrActionInFlight rejects a duplicate submission of an action
	// that is still outstanding.
	ErrActionInFlight = errors.New("workflow: action already in flight")

	// ErrStallUnavailable rejects reserving a stall that is not
	// AVAILABLE.
	ErrStallUnavailable = errors.New("workflow: stall is not available")

	// ErrNotPending rejects confirming a reservation that is not
	// PENDING.
	ErrNotPending = errors.New("workflow: only a pending reservation can be confirmed")

	// ErrAlreadyCancelled rejects cancelling a reservation twice.
	ErrAlreadyCancelled = errors.New("workflow: reservation is already cancelled")

	// ErrUnknownReservation means the id is not in the local list.
	ErrUnknownReservation = errors.New("workflow: unknown reservation")

	// ErrQRNotAvailable means the reservation has no QR code yet
	// because it has not been confirmed.  No network call is made.
	ErrQRNotAvailable = errors.New("workflow: QR code not available yet")
)

// StallService is the slice of the stall client the workflow needs.
type StallService interface {
	ReserveStall(ctx context.Context, stallID, userID int64) error
}

// ReservationService is the slice of the reservation client the
// workflow needs.
type ReservationService interface {
	GetReservations(ctx context.Context) ([]model.Reservation, error)
	GetUserReservations(ctx context.Context, userID int64) ([]model.Reservation, error)
	ConfirmReservation(ctx context.Context, id int64) (string, error)
	CancelReservation(ctx context.Context, id int64) error
	GetReservationQRCode(ctx context.Context, id int64) (string, error)
	VerifyReservationByQR(ctx context.Context, qrCode string) (client.VerifyResult, error)
}

// Notifier receives lifecycle events after a successful state change.
// Delivery failures must not fail the action; implementations log and
// move on.
type Notifier interface {
	Confirmed(ctx context.Context, ev queue.ReservationConfirmedEvent)
	Cancelled(ctx context.Context, ev queue.ReservationCancelledEvent)
}

// QueueNotifier publishes lifecycle events to RabbitMQ.  Publish errors
// are already logged by the queue package and deliberately dropped
// here: the broker is best-effort from the workflow's point of view.
type QueueNotifier struct{}

func (QueueNotifier) Confirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) {
	_ = queue.PublishReservationConfirmed(ctx, ev)
}

func (QueueNotifier) Cancelled(ctx context.Context, ev queue.ReservationCancelledEvent) {
	_ = queue.PublishReservationCancelled(ctx, ev)
}

// NopNotifier drops all events.  Used in tests.
type NopNotifier struct{}

func (NopNotifier) Confirmed(context.Context, queue.ReservationConfirmedEvent) {}
func (NopNotifier) Cancelled(context.Context, queue.ReservationCancelledEvent) {}

// CanConfirm reports whether the confirm action applies: only a
// PENDING reservation exposes it.
func CanConfirm(r model.Reservation) bool { return r.Status == model.ReservationPending }

// CanCancel reports whether the cancel action applies.  PENDING and
// CONFIRMED reservations can be cancelled; a CANCELLED one cannot.
func CanCancel(r model.Reservation) bool { return r.Status != model.ReservationCancelled }

// Controller drives the reservation workflow for one session.  All
// methods are safe for concurrent use; in practice each action owns
// its own in-flight flag so the same action cannot be submitted twice
// while outstanding.
type Controller struct {
	stalls       StallService
	reservations ReservationService
	notify       Notifier

	mu       sync.Mutex
	list     []model.Reservation
	qr       map[int64]string // lazily fetched QR payloads
	inflight map[string]bool

	now func() time.Time // stubbed in tests
}

func New(stalls StallService, reservations ReservationService, notify Notifier) *Controller {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Controller{
		stalls:       stalls,
		reservations: reservations,
		notify:       notify,
		qr:           make(map[int64]string),
		inflight:     make(map[string]bool),
		now:          time.Now,
	}
}

// LoadUser replaces the local snapshot with the authoritative list of
// reservations owned by userID.  Optimistic timestamps set by Confirm
// are reconciled away here.
func (c *Controller) LoadUser(ctx context.Context, userID int64) error {
	list, err := c.reservations.GetUserReservations(ctx, userID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}

// LoadAll replaces the local snapshot with every reservation the
// session may see.  Administrator view.
func (c *Controller) LoadAll(ctx context.Context) error {
	list, err := c.reservations.GetReservations(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}

// Reservations returns a copy of the local snapshot.
func (c *Controller) Reservations() []model.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Reservation, len(c.list))
	copy(out, c.list)
	return out
}

// Get returns the local copy of a reservation by id.
func (c *Controller) Get(id int64) (model.Reservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.list {
		if r.ID == id {
			return r, true
		}
	}
	return model.Reservation{}, false
}

// Reserve claims an AVAILABLE stall for userID.  On success the stall
// is marked RESERVED locally; the service now holds a PENDING
// reservation for it, picked up by the next LoadUser.
func (c *Controller) Reserve(ctx context.Context, stall *model.Stall, userID int64) error {
	key := fmt.Sprintf("reserve:%d", stall.ID)
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	if stall.Status != model.StallAvailable {
		return ErrStallUnavailable
	}
	if err := c.stalls.ReserveStall(ctx, stall.ID, userID); err != nil {
		return err
	}
	stall.Status = model.StallReserved
	return nil
}

// Confirm finalises a PENDING reservation (administrator action) and
// returns the server's confirmation message.  The local copy is
// updated optimistically: status CONFIRMED with ConfirmationDate and
// UpdatedAt set to the current time, an approximation reconciled by
// the next authoritative fetch.
func (c *Controller) Confirm(ctx context.Context, id int64) (string, error) {
	key := fmt.Sprintf("confirm:%d", id)
	if err := c.begin(key); err != nil {
		return "", err
	}
	defer c.end(key)

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return "", ErrUnknownReservation
	}
	if !CanConfirm(c.list[idx]) {
		c.mu.Unlock()
		return "", ErrNotPending
	}
	c.mu.Unlock()

	msg, err := c.reservations.ConfirmReservation(ctx, id)
	if err != nil {
		return "", err
	}

	now := c.now().UTC()
	c.mu.Lock()
	var ev queue.ReservationConfirmedEvent
	if idx = c.indexOf(id); idx >= 0 {
		c.list[idx].Status = model.ReservationConfirmed
		c.list[idx].ConfirmationDate = &now
		c.list[idx].UpdatedAt = now
		ev = queue.ReservationConfirmedEvent{
			EventID:       uuid.NewString(),
			ReservationID: c.list[idx].ID,
			UserID:        c.list[idx].UserID,
			StallID:       c.list[idx].StallID,
			TotalAmount:   c.list[idx].TotalAmount,
			ConfirmedAt:   now.Format(time.RFC3339),
		}
	}
	c.mu.Unlock()

	if ev.ReservationID != 0 {
		c.notify.Confirmed(ctx, ev)
	}
	return msg, nil
}

// Cancel withdraws a PENDING or CONFIRMED reservation.  On success the
// entry is removed from the local list entirely, not merely marked
// CANCELLED.
func (c *Controller) Cancel(ctx context.Context, id int64) error {
	key := fmt.Sprintf("cancel:%d", id)
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownReservation
	}
	if !CanCancel(c.list[idx]) {
		c.mu.Unlock()
		return ErrAlreadyCancelled
	}
	cancelled := c.list[idx]
	c.mu.Unlock()

	if err := c.reservations.CancelReservation(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	if idx = c.indexOf(id); idx >= 0 {
		c.list = append(c.list[:idx], c.list[idx+1:]...)
	}
	delete(c.qr, id)
	c.mu.Unlock()

	c.notify.Cancelled(ctx, queue.ReservationCancelledEvent{
		EventID:       uuid.NewString(),
		ReservationID: cancelled.ID,
		UserID:        cancelled.UserID,
		StallID:       cancelled.StallID,
		CancelledAt:   c.now().UTC().Format(time.RFC3339),
	})
	return nil
}

// QRCode returns the base64 QR payload for a CONFIRMED reservation,
// fetching it lazily on first request and caching it afterwards.  A
// reservation that is not CONFIRMED has no QR code yet; that outcome
// is decided locally without touching the network.
func (c *Controller) QRCode(ctx context.Context, id int64) (string, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return "", ErrUnknownReservation
	}
	if c.list[idx].Status != model.ReservationConfirmed {
		c.mu.Unlock()
		return "", ErrQRNotAvailable
	}
	if cached, ok := c.qr[id]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	payload, err := c.reservations.GetReservationQRCode(ctx, id)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.qr[id] = payload
	c.mu.Unlock()
	return payload, nil
}

// ExportQRCode decodes the reservation's QR payload and writes it to
// path as a PNG file.
func (c *Controller) ExportQRCode(ctx context.Context, id int64, path string) error {
	payload, err := c.QRCode(ctx, id)
	if err != nil {
		return err
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("workflow: decode QR payload: %w", err)
	}
	return os.WriteFile(path, img, 0o644)
}

// Verify resolves a scanned QR code through the reservation service.
// The result is tagged: either a matched reservation or a status
// message, never both.
func (c *Controller) Verify(ctx context.Context, qrCode string) (client.VerifyResult, error) {
	return c.reservations.VerifyReservationByQR(ctx, qrCode)
}

// indexOf must be called with c.mu held.
func (c *Controller) indexOf(id int64) int {
	for i, r := range c.list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return ErrActionInFlight
	}
	c.inflight[key] = true
	return nil
}

func (c *Controller) end(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}
