package model

// Stall sizes as reported by the stall service.  The service rejects
// any other value, so wrappers validate against this set before
// issuing a request.
const (
	SizeSmall  = "SMALL"
	SizeMedium = "MEDIUM"
	SizeLarge  = "LARGE"
)

// Stall statuses.  AVAILABLE and RESERVED flip back and forth through
// the reservation workflow; BLOCKED is set by administrators only and
// is never produced by this portal.
const (
	StallAvailable = "AVAILABLE"
	StallReserved  = "RESERVED"
	StallBlocked   = "BLOCKED"
)

// ValidSize reports whether s is one of the three stall sizes.
func ValidSize(s string) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// Stall is a physical exhibition booth as served by the stall service.
// StallCode is unique and uppercase (letters, digits and hyphens).
// X, y and rotation place the stall on the exhibition map.
//
// Fields:
//  ID        – primary identifier assigned by the stall service.
//  StallCode – unique uppercase code, e.g. "S001".
//  StallName – display name, up to 200 characters.
//  Size      – SMALL, MEDIUM or LARGE.
//  Width     – booth width, positive integer.
//  Depth     – booth depth, positive integer.
//  Category  – free-form category label, up to 100 characters.
//  X, Y      – map position.
//  Rotation  – map rotation in degrees, 0–360.
//  Status    – AVAILABLE, RESERVED or BLOCKED.
//  ImgURL    – optional image location, up to 500 characters.
//  Price     – booth price, greater than zero, at most 8 integer
//              digits and 2 decimals.
type Stall struct {
	ID        int64   `json:"id"`
	StallCode string  `json:"stallCode"`
	StallName string  `json:"stallName"`
	Size      string  `json:"size"`
	Width     int     `json:"width"`
	Depth     int     `json:"depth"`
	Category  string  `json:"category"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Rotation  float64 `json:"rotation"`
	Status    string  `json:"status"`
	ImgURL    string  `json:"imgUrl,omitempty"`
	Price     float64 `json:"price"`
}
