// Package phonelib exposes the phone-number capabilities the input control relies on.
// The default implementation delegates to github.com/nyaruka/phonenumbers.
package phonelib

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/hightemp/telin/internal/apperr"
)

// Style selects a phone number display format.
type Style int

const (
	// International renders "+1 202-555-0123".
	International Style = iota
	// National renders "(202) 555-0123".
	National
	// E164 renders "+12025550123".
	E164
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case International:
		return "INTERNATIONAL"
	case National:
		return "NATIONAL"
	case E164:
		return "E164"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Library is the set of phone-number operations used by the catalog and the control.
type Library interface {
	Parse(text, regionCode string) (*phonenumbers.PhoneNumber, error)
	Format(number *phonenumbers.PhoneNumber, style Style) string
	ExampleNumber(regionCode string) (*phonenumbers.PhoneNumber, error)
	IsValidForRegion(number *phonenumbers.PhoneNumber, regionCode string) bool
}

// Util implements Library on top of nyaruka/phonenumbers.
type Util struct{}

// New returns the default library implementation.
func New() *Util {
	return &Util{}
}

// Parse parses text using regionCode for numbers written without a leading '+'.
func (u *Util) Parse(text, regionCode string) (number *phonenumbers.PhoneNumber, err error) {
	region := strings.ToUpper(regionCode)

	// The metadata-driven parser can panic on pathological input.
	defer func() {
		if r := recover(); r != nil {
			number = nil
			err = apperr.Internal(fmt.Sprintf("parse %q: %v", text, r))
		}
	}()

	number, err = phonenumbers.Parse(text, region)
	if err != nil {
		return nil, fmt.Errorf("phonenumbers.Parse(%q, %s): %w", text, region, err)
	}
	return number, nil
}

// Format renders a parsed number. A nil number renders as "".
func (u *Util) Format(number *phonenumbers.PhoneNumber, style Style) string {
	if number == nil {
		return ""
	}

	switch style {
	case National:
		return phonenumbers.Format(number, phonenumbers.NATIONAL)
	case E164:
		return phonenumbers.Format(number, phonenumbers.E164)
	default:
		return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
	}
}

// ExampleNumber returns the library's example fixed-line number for a region.
func (u *Util) ExampleNumber(regionCode string) (*phonenumbers.PhoneNumber, error) {
	region := strings.ToUpper(regionCode)

	number := phonenumbers.GetExampleNumber(region)
	if number == nil {
		return nil, apperr.Unsupported(fmt.Sprintf("no example number for region %q", region)).WithOp("example_number")
	}
	return number, nil
}

// IsValidForRegion reports whether number is a valid number in regionCode.
func (u *Util) IsValidForRegion(number *phonenumbers.PhoneNumber, regionCode string) bool {
	if number == nil {
		return false
	}
	return phonenumbers.IsValidNumberForRegion(number, strings.ToUpper(regionCode))
}
