package domain

import "time"

// Identity is an authenticated principal: one of the four role variants.
// Role is the variant tag; the display fields populated depend on it
// (admins carry FullName, clinical roles carry First/LastName, doctors
// additionally Specialization and ConsultationFee).
type Identity struct {
	ID              string    `json:"id"`
	Role            Role      `json:"role"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name,omitempty"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	ConsultationFee float64   `json:"consultation_fee,omitempty"`
	PasswordHash    string    `json:"-"`
	IsActive        bool      `json:"is_active"`
	LastLogin       time.Time `json:"last_login,omitempty"`
}

// DisplayName renders the human-readable name for whichever variant this is.
func (id Identity) DisplayName() string {
	if id.FullName != "" {
		return id.FullName
	}
	name := id.FirstName
	if id.LastName != "" {
		if name != "" {
			name += " "
		}
		name += id.LastName
	}
	if id.Role == RoleDoctor && name != "" {
		return "Dr. " + name
	}
	return name
}

// IdentityFromRow builds the typed identity for role from a credential row.
func IdentityFromRow(r Row, role Role) Identity {
	return Identity{
		ID:              r.String("id"),
		Role:            role,
		Email:           r.String("email"),
		FullName:        r.String("full_name"),
		FirstName:       r.String("first_name"),
		LastName:        r.String("last_name"),
		Specialization:  r.String("specialization"),
		ConsultationFee: r.Float("consultation_fee"),
		PasswordHash:    r.String("password_hash"),
		IsActive:        r.Bool("is_active"),
		LastLogin:       r.Time("last_login"),
	}
}

// Session is the current identity plus its role tag, or anonymous.
// Invariant: Identity is nil exactly when Role is empty.
type Session struct {
	Identity *Identity `json:"identity"`
	Role     Role      `json:"role"`
}

// Anonymous is the no-session value.
var Anonymous = Session{}

func (s Session) IsAnonymous() bool { return s.Identity == nil }

// UserID returns the current identity's id, or "" when anonymous.
func (s Session) UserID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}
