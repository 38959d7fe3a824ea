package service

import (
	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// ScopeFilters prepends the owner filter a session must carry on an
// owner-scoped collection. For admin sessions (and for collections that are
// not owner-scoped for the session's role) the extra filters pass through
// untouched. This is the only place the owner-filter invariant is built;
// every role-scoped query in the service layer goes through it.
//
// The scoping happens client-side, mirroring the system this replaces: the
// store itself enforces nothing. See DESIGN.md.
func ScopeFilters(sess domain.Session, collection string, extra ...ports.Filter) []ports.Filter {
	if sess.IsAnonymous() {
		return extra
	}
	column, ok := domain.OwnerColumn(collection, sess.Role)
	if !ok {
		return extra
	}
	filters := make([]ports.Filter, 0, len(extra)+1)
	filters = append(filters, ports.Eq(column, sess.UserID()))
	return append(filters, extra...)
}
