package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.co",
		"n_u-m%ber5@mail.io",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@no-local-part.com",
		"user@",
		"user@domain",
		"user @example.com",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{
		"Abcdef1!",
		"S3gura-clave",
	}
	invalid := []string{
		"short1!",       // under 8 chars
		"alllowercase1!", // no upper
		"ALLUPPERCASE1!", // no lower
		"NoDigitsHere!",  // no digit
		"NoSpecial123",   // no special char
	}
	for _, pw := range valid {
		if !ValidatePassword(pw) {
			t.Errorf("ValidatePassword(%q) = false, want true", pw)
		}
	}
	for _, pw := range invalid {
		if ValidatePassword(pw) {
			t.Errorf("ValidatePassword(%q) = true, want false", pw)
		}
	}
}
