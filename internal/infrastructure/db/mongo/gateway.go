package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/well2nest/hospital-system/internal/api/metrics"
	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// defaultTimeout bounds each individual gateway call.
const defaultTimeout = 10 * time.Second

// Gateway implements ports.Gateway over a MongoDB database: every named
// collection maps to a Mongo collection of the same name. Failures surface
// as *domain.DataAccessError; there are no retries.
type Gateway struct {
	db     *mongo.Database
	logger zerolog.Logger
}

func NewGateway(db *mongo.Database, logger zerolog.Logger) *Gateway {
	return &Gateway{db: db, logger: logger}
}

func (g *Gateway) Select(ctx context.Context, collection string, q ports.Query) ([]domain.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer g.observe(collection, "select", time.Now())

	opts := options.Find()
	if len(q.OrderBy) > 0 {
		sort := bson.D{}
		for _, o := range q.OrderBy {
			dir := 1
			if o.Descending {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Column, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := g.db.Collection(collection).Find(ctx, buildFilter(q.Filters), opts)
	if err != nil {
		return nil, g.fail(collection, "select", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, g.fail(collection, "select", err)
	}

	rows := make([]domain.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, normalizeDoc(d))
	}
	return rows, nil
}

func (g *Gateway) Count(ctx context.Context, collection string, filters []ports.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer g.observe(collection, "count", time.Now())

	n, err := g.db.Collection(collection).CountDocuments(ctx, buildFilter(filters))
	if err != nil {
		return 0, g.fail(collection, "count", err)
	}
	return n, nil
}

func (g *Gateway) Insert(ctx context.Context, collection string, row domain.Row) (domain.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer g.observe(collection, "insert", time.Now())

	stored := make(domain.Row, len(row)+1)
	for k, v := range row {
		stored[k] = v
	}
	// The external store hands out row ids on insert; here that is us.
	if stored.String("id") == "" {
		stored["id"] = uuid.NewString()
	}

	if _, err := g.db.Collection(collection).InsertOne(ctx, bson.M(stored)); err != nil {
		return nil, g.fail(collection, "insert", err)
	}
	return stored, nil
}

func (g *Gateway) Update(ctx context.Context, collection string, filters []ports.Filter, patch domain.Row) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer g.observe(collection, "update", time.Now())

	_, err := g.db.Collection(collection).UpdateMany(ctx, buildFilter(filters), bson.M{"$set": bson.M(patch)})
	if err != nil {
		return g.fail(collection, "update", err)
	}
	return nil
}

func (g *Gateway) Delete(ctx context.Context, collection string, filters []ports.Filter) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer g.observe(collection, "delete", time.Now())

	_, err := g.db.Collection(collection).DeleteMany(ctx, buildFilter(filters))
	if err != nil {
		return g.fail(collection, "delete", err)
	}
	return nil
}

func (g *Gateway) fail(collection, operation string, err error) error {
	metrics.GatewayErrorsTotal.WithLabelValues(collection, operation).Inc()
	g.logger.Debug().Err(err).Str("collection", collection).Str("operation", operation).Msg("gateway query failed")
	return &domain.DataAccessError{Collection: collection, Operation: operation, Err: err}
}

func (g *Gateway) observe(collection, operation string, start time.Time) {
	metrics.GatewayQueriesTotal.WithLabelValues(collection, operation).Inc()
	metrics.GatewayQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

var filterOps = map[ports.FilterOp]string{
	ports.OpNeq: "$ne",
	ports.OpGte: "$gte",
	ports.OpLte: "$lte",
}

// buildFilter renders a filter conjunction as a Mongo query document.
// Comparison predicates on the same column share one operator document, so
// gte+lte range pairs combine the way callers expect.
func buildFilter(filters []ports.Filter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		if f.Op == ports.OpEq || f.Op == "" {
			out[f.Column] = f.Value
			continue
		}
		ops, ok := out[f.Column].(bson.M)
		if !ok {
			ops = bson.M{}
			out[f.Column] = ops
		}
		ops[filterOps[f.Op]] = f.Value
	}
	return out
}

// normalizeDoc flattens BSON-specific types into the plain Go values
// domain.Row accessors understand.
func normalizeDoc(doc bson.M) domain.Row {
	row := make(domain.Row, len(doc))
	for k, v := range doc {
		row[k] = normalizeValue(v)
	}
	// Rows carry their own id column; fall back to the object id for
	// documents created outside this gateway.
	if row.String("id") == "" {
		if oid, ok := doc["_id"].(primitive.ObjectID); ok {
			row["id"] = oid.Hex()
		}
	}
	delete(row, "_id")
	return row
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	default:
		return v
	}
}
