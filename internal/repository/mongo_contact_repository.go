package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/joedev/portfolio-api/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// contactDocument is the stored shape of a contact. Field names match the
// documents already in the contacts collection so existing data stays readable.
type contactDocument struct {
	ID                    bson.ObjectID `bson:"_id,omitempty"`
	Name                  string        `bson:"name"`
	Email                 string        `bson:"email"`
	Company               string        `bson:"company,omitempty"`
	ProjectType           string        `bson:"projectType"`
	Message               string        `bson:"message"`
	WantsFreeConsultation bool          `bson:"wantsFreeConsultation"`
	CreatedAt             time.Time     `bson:"createdAt"`
	IP                    string        `bson:"ip,omitempty"`
	UserAgent             string        `bson:"userAgent,omitempty"`
}

func newContactDocument(c *model.Contact) contactDocument {
	return contactDocument{
		Name:                  c.Name,
		Email:                 c.Email,
		Company:               c.Company,
		ProjectType:           string(c.ProjectType),
		Message:               c.Message,
		WantsFreeConsultation: c.WantsFreeConsultation,
		CreatedAt:             c.CreatedAt,
		IP:                    c.IP,
		UserAgent:             c.UserAgent,
	}
}

func (d contactDocument) toModel() *model.Contact {
	return &model.Contact{
		ID:                    d.ID.Hex(),
		Name:                  d.Name,
		Email:                 d.Email,
		Company:               d.Company,
		ProjectType:           model.ProjectType(d.ProjectType),
		Message:               d.Message,
		WantsFreeConsultation: d.WantsFreeConsultation,
		CreatedAt:             d.CreatedAt.UTC(),
		IP:                    d.IP,
		UserAgent:             d.UserAgent,
	}
}

// MongoContactRepository is the MongoDB implementation of ContactRepository.
type MongoContactRepository struct {
	coll *mongo.Collection
}

// NewMongoContactRepository creates a MongoContactRepository over coll.
func NewMongoContactRepository(coll *mongo.Collection) *MongoContactRepository {
	return &MongoContactRepository{coll: coll}
}

// Ensure MongoContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*MongoContactRepository)(nil)

// Insert stores c and sets c.ID from the ObjectID assigned by the driver.
func (r *MongoContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	res, err := r.coll.InsertOne(ctx, newContactDocument(c))
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	c.ID = oid.Hex()
	return nil
}

// buildContactFilter translates list options into a query document.
// Search text is escaped so it matches literally.
func buildContactFilter(opts model.ContactListOptions) bson.D {
	filter := bson.D{}
	if opts.ProjectType != "" {
		filter = append(filter, bson.E{Key: "projectType", Value: opts.ProjectType})
	}
	if opts.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "email", Value: re}},
			bson.D{{Key: "company", Value: re}},
		}})
	}
	return filter
}

// List returns one page sorted by createdAt descending and the filter-set size.
func (r *MongoContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
	filter := buildContactFilter(opts)

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit))

	cur, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	contacts := make([]*model.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.toModel())
	}
	return contacts, total, nil
}

// Delete removes one contact by ObjectID hex. Unparsable ids match nothing.
func (r *MongoContactRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts the collection, the current month, consultation requests and
// submissions per project type.
func (r *MongoContactRepository) Stats(ctx context.Context, monthStart time.Time) (*model.ContactStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	thisMonth, err := r.coll.CountDocuments(ctx, bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: monthStart}}}})
	if err != nil {
		return nil, err
	}
	consultations, err := r.coll.CountDocuments(ctx, bson.D{{Key: "wantsFreeConsultation", Value: true}})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$projectType"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []struct {
		ProjectType string `bson:"_id"`
		Count       int64  `bson:"count"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(groups))
	for _, g := range groups {
		byType[g.ProjectType] = g.Count
	}
	return &model.ContactStats{
		Total:                total,
		ThisMonth:            thisMonth,
		ConsultationRequests: consultations,
		ByProjectType:        byType,
	}, nil
}

// EnsureIndexes creates the indexes backing the default sort and the
// projectType filter. It is idempotent.
func (r *MongoContactRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "projectType", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}
