package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// FilterOp is a comparison predicate understood by the gateway.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpNeq FilterOp = "neq"
	OpGte FilterOp = "gte"
	OpLte FilterOp = "lte"
)

// Filter is one predicate; a query's filters are a conjunction.
type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

func Eq(column string, value any) Filter  { return Filter{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }

// Order is one sort key.
type Order struct {
	Column     string
	Descending bool
}

// Query parameterizes a Select: conjunction of filters, ordering, row cap.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// Gateway is the uniform interface to named remote collections. Every read
// and write in the system, the auth manager's credential lookup included,
// goes through it. Implementations surface any underlying failure as a
// *domain.DataAccessError and never retry.
type Gateway interface {
	Select(ctx context.Context, collection string, q Query) ([]domain.Row, error)
	Count(ctx context.Context, collection string, filters []Filter) (int64, error)
	// Insert returns the row as stored, id included.
	Insert(ctx context.Context, collection string, row domain.Row) (domain.Row, error)
	Update(ctx context.Context, collection string, filters []Filter, patch domain.Row) error
	Delete(ctx context.Context, collection string, filters []Filter) error
}
