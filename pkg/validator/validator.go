// Package validator holds the explicit field validators for booking input.
// Each check returns a typed validation error naming the offending field so
// handlers can surface precise messages.
package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/apnadr/hospital-api/pkg/errors"
)

// Validation patterns. PhonePattern requires exactly ten digits; EmailPattern
// is the mailbox shape the booking form has always accepted.
const (
	PhonePattern = `^\d{10}$`
	EmailPattern = `^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`

	DateLayout = "2006-01-02"
)

var (
	phoneRe = regexp.MustCompile(PhonePattern)
	emailRe = regexp.MustCompile(EmailPattern)

	genders = map[string]struct{}{
		"Male":   {},
		"Female": {},
		"Other":  {},
	}
)

// Required fails when value is empty after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Validation(field, field+" is required")
	}
	return nil
}

// Phone validates a 10-digit phone number.
func Phone(field, value string) error {
	if !phoneRe.MatchString(value) {
		return errors.Validation(field, "must be a valid 10-digit phone number")
	}
	return nil
}

// Email validates an optional email address; empty is accepted.
func Email(field, value string) error {
	if value == "" {
		return nil
	}
	if !emailRe.MatchString(value) {
		return errors.Validation(field, "must be a valid email address")
	}
	return nil
}

// Gender validates against the enumerated set.
func Gender(field, value string) error {
	if _, ok := genders[value]; !ok {
		return errors.Validation(field, "must be one of Male, Female, Other")
	}
	return nil
}

// FutureDate parses a calendar date and rejects dates strictly before today.
// The comparison is at day granularity: a booking for today is allowed
// regardless of the current time of day.
func FutureDate(field, value string, now time.Time) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, errors.Validation(field, "must be a date in YYYY-MM-DD format")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return time.Time{}, errors.Validation(field, "cannot be in the past")
	}
	return date, nil
}
