package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

func TestBuildFilter_Eq(t *testing.T) {
	got := buildFilter([]ports.Filter{
		ports.Eq("doctor_id", "doc_1"),
		ports.Eq("status", "scheduled"),
	})
	want := bson.M{"doctor_id": "doc_1", "status": "scheduled"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFilter_Comparisons(t *testing.T) {
	got := buildFilter([]ports.Filter{
		ports.Neq("status", "paid"),
		ports.Lte("quantity", 10),
	})
	want := bson.M{
		"status":   bson.M{"$ne": "paid"},
		"quantity": bson.M{"$lte": 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFilter_RangePairSharesColumn(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	got := buildFilter([]ports.Filter{
		ports.Gte("appointment_date", from),
		ports.Lte("appointment_date", to),
	})
	want := bson.M{
		"appointment_date": bson.M{"$gte": from, "$lte": to},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFilter_Empty(t *testing.T) {
	if got := buildFilter(nil); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestNormalizeDoc_BSONTypes(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id":              oid,
		"id":               "a_1",
		"appointment_date": primitive.NewDateTimeFromTime(at),
		"medications": primitive.A{
			bson.M{"id": "inv_1", "quantity": int32(20)},
		},
		"nested": bson.D{{Key: "key", Value: "value"}},
	}

	row := normalizeDoc(doc)
	if _, ok := row["_id"]; ok {
		t.Fatalf("_id must be stripped: %v", row)
	}
	if row.String("id") != "a_1" {
		t.Fatalf("explicit id must win: %v", row)
	}
	if !row.Time("appointment_date").Equal(at) {
		t.Fatalf("datetime not normalized: %v", row["appointment_date"])
	}

	meds := row.Slice("medications")
	if len(meds) != 1 {
		t.Fatalf("array not normalized: %v", row["medications"])
	}
	m, ok := meds[0].(map[string]any)
	if !ok {
		t.Fatalf("array element not a plain map: %T", meds[0])
	}
	if m["id"] != "inv_1" {
		t.Fatalf("unexpected element: %v", m)
	}

	nested, ok := row["nested"].(map[string]any)
	if !ok || nested["key"] != "value" {
		t.Fatalf("bson.D not normalized: %v", row["nested"])
	}
}

func TestNormalizeDoc_ObjectIDFallback(t *testing.T) {
	oid := primitive.NewObjectID()
	row := normalizeDoc(bson.M{"_id": oid, "name": "Cardiology"})
	if row.String("id") != oid.Hex() {
		t.Fatalf("expected object id fallback, got %q", row.String("id"))
	}
}
