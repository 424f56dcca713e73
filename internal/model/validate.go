package model

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	codeRE  = regexp.MustCompile(`^[A-Z0-9-]+$`)
	priceRE = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)
)

// ValidCode reports whether s is a well-formed stall code.
func ValidCode(s string) bool { return codeRE.MatchString(s) }

// ValidateStall checks the create/edit stall form field by field and
// returns a field→message map.  An empty map means the form is valid.
// These checks run locally, before any request is issued.
func ValidateStall(s Stall) map[string]string {
	errs := map[string]string{}

	code := strings.TrimSpace(s.StallCode)
	switch {
	case code == "":
		errs["stallCode"] = "Stall code is required"
	case !codeRE.MatchString(code):
		errs["stallCode"] = "Use uppercase letters, numbers and hyphens only"
	}

	name := strings.TrimSpace(s.StallName)
	switch {
	case name == "":
		errs["stallName"] = "Stall name is required"
	case len(name) > 200:
		errs["stallName"] = "Max 200 characters"
	}

	if !ValidSize(s.Size) {
		errs["size"] = "Size is required"
	}
	if s.Width <= 0 {
		errs["width"] = "Width must be a positive integer"
	}
	if s.Depth <= 0 {
		errs["depth"] = "Depth must be a positive integer"
	}
	if len(s.Category) > 100 {
		errs["category"] = "Max 100 characters"
	}
	if s.X < 0 {
		errs["x"] = "X position must be 0 or greater"
	}
	if s.Y < 0 {
		errs["y"] = "Y position must be 0 or greater"
	}
	if s.Rotation < 0 || s.Rotation > 360 {
		errs["rotation"] = "Rotation must be 0.0 - 360.0"
	}
	if s.Status != StallAvailable && s.Status != StallReserved && s.Status != StallBlocked {
		errs["status"] = "Status is required"
	}
	if len(s.ImgURL) > 500 {
		errs["imgUrl"] = "Image URL max 500 characters"
	}

	// price: positive, at most 8 integer digits and 2 decimals
	if s.Price <= 0 {
		errs["price"] = "Price must be greater than 0"
	} else if !priceRE.MatchString(strconv.FormatFloat(s.Price, 'f', -1, 64)) {
		errs["price"] = "Price max 8 digits and up to 2 decimals"
	}

	return errs
}
