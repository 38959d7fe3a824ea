package domain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// SessionRecord is the locally persisted form of a session: written on
// login, read back on startup, erased on logout. Token is an opaque marker
// that a login happened, not a credential; IdentityJSON carries the full
// identity so a restore needs no gateway round trip.
type SessionRecord struct {
	Token        string `json:"token"`
	IdentityJSON []byte `json:"identity"`
	Role         Role   `json:"role"`
}

// tokenPayload is what the opaque marker encodes. Base64 of JSON — no
// signature, no secret. Do not mistake this for a security mechanism.
type tokenPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Timestamp int64  `json:"timestamp"`
}

var errMalformedToken = errors.New("malformed session token")

// EncodeSessionToken builds the opaque login marker.
func EncodeSessionToken(id, email string, role Role, at time.Time) string {
	payload, _ := json.Marshal(tokenPayload{
		ID:        id,
		Email:     email,
		Role:      role,
		Timestamp: at.UnixMilli(),
	})
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeSessionToken parses a marker back into its fields. Used only for
// structural validation during restore; a decode failure means the persisted
// record is corrupt and the session falls back to anonymous.
func DecodeSessionToken(token string) (id, email string, role Role, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", "", errMalformedToken
	}
	var p tokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", "", "", errMalformedToken
	}
	if p.ID == "" || !p.Role.Valid() {
		return "", "", "", errMalformedToken
	}
	return p.ID, p.Email, p.Role, nil
}

// NewSessionRecord assembles the persisted record for a freshly
// authenticated identity.
func NewSessionRecord(id Identity, at time.Time) (SessionRecord, error) {
	identityJSON, err := json.Marshal(id)
	if err != nil {
		return SessionRecord{}, err
	}
	return SessionRecord{
		Token:        EncodeSessionToken(id.ID, id.Email, id.Role, at),
		IdentityJSON: identityJSON,
		Role:         id.Role,
	}, nil
}

// Session reconstructs the session a record was written from. It returns an
// error for any structural defect: unknown role, undecodable token, identity
// JSON that does not parse or lacks an id, or a role tag that disagrees with
// the identity's own.
func (rec SessionRecord) Session() (Session, error) {
	if !rec.Role.Valid() {
		return Anonymous, ErrInvalidRole
	}
	if _, _, _, err := DecodeSessionToken(rec.Token); err != nil {
		return Anonymous, err
	}
	var id Identity
	if err := json.Unmarshal(rec.IdentityJSON, &id); err != nil {
		return Anonymous, err
	}
	if id.ID == "" {
		return Anonymous, errors.New("session record missing identity id")
	}
	if id.Role != "" && id.Role != rec.Role {
		return Anonymous, errors.New("session record role mismatch")
	}
	id.Role = rec.Role
	return Session{Identity: &id, Role: rec.Role}, nil
}
