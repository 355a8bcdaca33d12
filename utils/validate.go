package utils

import "regexp"

// Field patterns carried over from the checkout and POS forms.
var (
	namePattern    = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	anyTenDigits   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// ValidName allows letters and spaces only.
func ValidName(s string) bool { return namePattern.MatchString(s) }

func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidIndianPhone requires ten digits starting 6-9 (POS customer rule).
func ValidIndianPhone(s string) bool { return phonePattern.MatchString(s) }

// ValidPhone requires any ten digits (checkout shipping rule).
func ValidPhone(s string) bool { return anyTenDigits.MatchString(s) }

func ValidPincode(s string) bool { return pincodePattern.MatchString(s) }
