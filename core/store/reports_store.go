package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

const reportsCollection = "reports"

// Report is the persisted representation of one submitted incident. Records
// are immutable once stored; there are no update or delete operations.
type Report struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CollegeCode      string             `bson:"collegeCode" json:"collegeCode"`
	IncidentCategory string             `bson:"incidentCategory" json:"incidentCategory"`
	IncidentType     string             `bson:"incidentType" json:"incidentType"`
	Description      string             `bson:"description" json:"description"`
	Date             time.Time          `bson:"date" json:"date"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

type ReportFilter struct {
	Limit  int
	Offset int
}

// PersistenceError wraps a driver failure. Validation problems never reach
// the store; anything surfacing here is a server-side 500.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type ReportsStore interface {
	CreateReport(ctx context.Context, report *Report) (primitive.ObjectID, error)
	GetReport(ctx context.Context, id primitive.ObjectID) (*Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]Report, error)
	CountReports(ctx context.Context) (int64, error)
}

type reportsStore struct {
	col *mongo.Collection
}

func NewReportsStore(db *mongo.Database) ReportsStore {
	return &reportsStore{col: db.Collection(reportsCollection)}
}

func (s *reportsStore) CreateReport(ctx context.Context, report *Report) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	if report.Date.IsZero() {
		report.Date = now
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	res, err := s.col.InsertOne(ctx, report)
	if err != nil {
		return primitive.NilObjectID, &PersistenceError{Op: "insert report", Err: err}
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, &PersistenceError{Op: "insert report", Err: fmt.Errorf("unexpected inserted id type %T", res.InsertedID)}
	}
	report.ID = id
	return id, nil
}

func (s *reportsStore) GetReport(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find report", Err: err}
	}
	return &report, nil
}

func (s *reportsStore) ListReports(ctx context.Context, filter ReportFilter) ([]Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &PersistenceError{Op: "list reports", Err: err}
	}
	defer cur.Close(ctx)
	var items []Report
	if err := cur.All(ctx, &items); err != nil {
		return nil, &PersistenceError{Op: "list reports", Err: err}
	}
	return items, nil
}

func (s *reportsStore) CountReports(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, &PersistenceError{Op: "count reports", Err: err}
	}
	return n, nil
}
