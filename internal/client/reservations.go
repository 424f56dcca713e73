package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

// ReservationClient wraps the reservation service.  All operations
// require a session token and fail locally with ErrAuthRequired before
// any request when it is missing.
type ReservationClient struct{ base }

func NewReservationClient(baseURL string, sess session.Source, timeout time.Duration) *ReservationClient {
	return &ReservationClient{newBase(baseURL, sess, timeout)}
}

// GetReservations returns every reservation the caller may see.  A 2xx
// payload that is not a list decodes to an empty collection rather than
// an error; the service occasionally answers wrapped objects that the
// portal has nothing useful to do with.
func (c *ReservationClient) GetReservations(ctx context.Context) ([]model.Reservation, error) {
	const op = "fetch reservations"
	resp, err := c.do(ctx, http.MethodGet, "/reservations", nil, nil, authRequired, op)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeReservationList(resp.Body, op)
}

// GetUserReservations returns the reservations owned by userID.
func (c *ReservationClient) GetUserReservations(ctx context.Context, userID int64) ([]model.Reservation, error) {
	const op = "fetch reservations"
	path := fmt.Sprintf("/reservations/user/%d", userID)
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, authRequired, op)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeReservationList(resp.Body, op)
}

// ConfirmReservation asks the service to confirm a PENDING reservation
// and returns the server's confirmation message, or a default one when
// the body carries none.
func (c *ReservationClient) ConfirmReservation(ctx context.Context, id int64) (string, error) {
	const op = "confirm reservation"
	path := fmt.Sprintf("/reservations/%d/confirm", id)
	resp, err := c.do(ctx, http.MethodPut, path, nil, nil, authRequired, op)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		return "Reservation confirmed", nil
	}
	return body.Message, nil
}

// CancelReservation deletes a reservation.
func (c *ReservationClient) CancelReservation(ctx context.Context, id int64) error {
	const op = "cancel reservation"
	path := fmt.Sprintf("/reservations/%d", id)
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil, authRequired, op)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GetReservationQRCode fetches the QR image for a confirmed
// reservation.  The service answers raw base64 text, returned trimmed.
func (c *ReservationClient) GetReservationQRCode(ctx context.Context, id int64) (string, error) {
	const op = "fetch QR code"
	path := fmt.Sprintf("/reservations/%d/qr-code", id)
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, authRequired, op)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Verify result kinds.  The verify endpoint mixes two response shapes
// under one route; the wrapper resolves them into a tagged result once
// so callers never sniff fields themselves.
const (
	VerifyReservation = "reservation" // payload matched a reservation record
	VerifyMessage     = "message"     // payload was a status message
)

// VerifyResult is the tagged outcome of a verify-by-QR call.  Exactly
// one of Reservation and Message is meaningful, selected by Kind.
type VerifyResult struct {
	Kind        string
	Reservation *model.Reservation
	Message     string
	Timestamp   string
}

// VerifyReservationByQR resolves a scanned QR code.  A payload carrying
// id, userId and stallId is a reservation record; anything else is a
// status message with an optional timestamp.
func (c *ReservationClient) VerifyReservationByQR(ctx context.Context, qrCode string) (VerifyResult, error) {
	qrCode = strings.TrimSpace(qrCode)
	if qrCode == "" {
		return VerifyResult{}, &ValidationError{Reason: "QR code required"}
	}
	const op = "verify reservation"
	q := url.Values{"qrCode": {qrCode}}
	resp, err := c.do(ctx, http.MethodGet, "/reservations/verify-qr", q, nil, authRequired, op)
	if err != nil {
		return VerifyResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return VerifyResult{}, fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return VerifyResult{}, fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	_, hasID := probe["id"]
	_, hasUser := probe["userId"]
	_, hasStall := probe["stallId"]
	if hasID && hasUser && hasStall {
		var r model.Reservation
		if err := json.Unmarshal(raw, &r); err != nil {
			return VerifyResult{}, fmt.Errorf("%s failed (unreadable response): %w", op, err)
		}
		return VerifyResult{Kind: VerifyReservation, Reservation: &r}, nil
	}
	var msg struct {
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return VerifyResult{}, fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	return VerifyResult{Kind: VerifyMessage, Message: msg.Message, Timestamp: msg.Timestamp}, nil
}

// decodeReservationList reads a reservation collection.  Non-list 2xx
// payloads yield an empty slice; a malformed list is a parse failure.
func decodeReservationList(r io.Reader, op string) ([]model.Reservation, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return []model.Reservation{}, nil
	}
	var out []model.Reservation
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s failed (unreadable response): %w", op, err)
	}
	return out, nil
}
