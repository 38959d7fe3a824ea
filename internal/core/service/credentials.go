package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Demo-account passwords shipped with the seeded data. This whole
// verification ladder reproduces the behavior of the system being replaced;
// it is NOT a sound credential policy. In particular the trailing
// fallbackPassword clause accepts a fixed password for any account whose
// bcrypt comparison fails. A production deployment must delete that clause
// and rely on the bcrypt comparison alone.
var demoPasswords = map[string]string{
	"admin@well2nest.com":      "admin123",
	"doctor@well2nest.com":     "doctor123",
	"patient@well2nest.com":    "patient123",
	"pharmacist@well2nest.com": "pharmacist123",
}

const fallbackPassword = "default123"

// bcryptMarker is the hash prefix the seeded demo rows carry.
const bcryptMarker = "$2b$10$"

// verifyPassword runs the three-step ladder:
//  1. demo account: supplied password equals the demo password for this
//     email and the stored secret looks like a bcrypt hash;
//  2. real bcrypt comparison against the stored secret;
//  3. last resort: the fixed fallback password.
func (m *AuthManager) verifyPassword(email, password, storedHash string) bool {
	if demo, ok := demoPasswords[email]; ok {
		if password == demo && strings.Contains(storedHash, bcryptMarker) {
			return true
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil {
		return true
	}

	if password == fallbackPassword {
		m.logger.Warn().Str("email", email).Msg("login accepted via fallback password")
		return true
	}
	return false
}
