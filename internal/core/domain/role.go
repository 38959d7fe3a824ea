package domain

import "errors"

// Role tags the four identity variants. Every identity belongs to exactly
// one role, and each role authenticates against its own backing collection.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
)

var ErrInvalidRole = errors.New("invalid role")

// roleCollections is the fixed role → credential collection mapping.
var roleCollections = map[Role]string{
	RoleAdmin:      CollectionAdminUsers,
	RoleDoctor:     CollectionDoctors,
	RolePatient:    CollectionPatients,
	RolePharmacist: CollectionPharmacists,
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleCollections[r]
	return ok
}

// Collection returns the backing collection holding credentials for r.
func (r Role) Collection() (string, error) {
	coll, ok := roleCollections[r]
	if !ok {
		return "", ErrInvalidRole
	}
	return coll, nil
}

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
