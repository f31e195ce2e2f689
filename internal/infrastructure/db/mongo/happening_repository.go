package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const happeningCollection = "happenings"

type MongoHappeningRepository struct {
	coll *mongo.Collection
}

func NewHappeningRepository(db *mongo.Database) *MongoHappeningRepository {
	return &MongoHappeningRepository{coll: db.Collection(happeningCollection)}
}

type mongoHappening struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Start       time.Time          `bson:"start"`
	End         time.Time          `bson:"end"`
	Cover       string             `bson:"cover,omitempty"`
	Promoter    primitive.ObjectID `bson:"promoter"`
	TicketPrice string             `bson:"ticket_price,omitempty"`
	Location    string             `bson:"location"`
	Description string             `bson:"description"`
	Attendees   []domain.Attendee  `bson:"clients"`
}

func (m mongoHappening) toDomain() *domain.Happening {
	attendees := m.Attendees
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	return &domain.Happening{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Start:       m.Start,
		End:         m.End,
		Cover:       m.Cover,
		PromoterID:  m.Promoter.Hex(),
		TicketPrice: m.TicketPrice,
		Location:    m.Location,
		Description: m.Description,
		Attendees:   attendees,
	}
}

func (r *MongoHappeningRepository) Create(ctx context.Context, happening *domain.Happening) (*domain.Happening, error) {
	promoterOID, err := primitive.ObjectIDFromHex(happening.PromoterID)
	if err != nil {
		return nil, domain.ErrPromoterNotFound
	}

	doc := mongoHappening{
		Title:       happening.Title,
		Start:       happening.Start,
		End:         happening.End,
		Cover:       happening.Cover,
		Promoter:    promoterOID,
		TicketPrice: happening.TicketPrice,
		Location:    happening.Location,
		Description: happening.Description,
		Attendees:   happening.Attendees,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert happening: %w", err)
	}

	created := *happening
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoHappeningRepository) FindByID(ctx context.Context, id string) (*domain.Happening, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHappeningNotFound
	}

	var mh mongoHappening
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mh); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrHappeningNotFound
		}
		return nil, fmt.Errorf("find happening: %w", err)
	}
	return mh.toDomain(), nil
}

func (r *MongoHappeningRepository) FindAll(ctx context.Context) ([]domain.Happening, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoHappeningRepository) FindByPromoter(ctx context.Context, promoterID string) ([]domain.Happening, error) {
	oid, err := primitive.ObjectIDFromHex(promoterID)
	if err != nil {
		return []domain.Happening{}, nil
	}
	return r.findMany(ctx, bson.M{"promoter": oid})
}

func (r *MongoHappeningRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Happening, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find happenings: %w", err)
	}
	defer cur.Close(ctx)

	happenings := []domain.Happening{}
	for cur.Next(ctx) {
		var mh mongoHappening
		if err := cur.Decode(&mh); err != nil {
			return nil, fmt.Errorf("decode happening: %w", err)
		}
		happenings = append(happenings, *mh.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate happenings: %w", err)
	}
	return happenings, nil
}

func (r *MongoHappeningRepository) UpdateByID(ctx context.Context, id string, update ports.HappeningUpdate) (*domain.Happening, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHappeningNotFound
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Start != nil {
		set["start"] = *update.Start
	}
	if update.End != nil {
		set["end"] = *update.End
	}
	if update.TicketPrice != nil {
		set["ticket_price"] = *update.TicketPrice
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Cover != nil {
		set["cover"] = *update.Cover
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mh mongoHappening
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mh); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrHappeningNotFound
		}
		return nil, fmt.Errorf("update happening: %w", err)
	}
	return mh.toDomain(), nil
}

func (r *MongoHappeningRepository) DeleteByID(ctx context.Context, id string) (*domain.Happening, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHappeningNotFound
	}

	var mh mongoHappening
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mh); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrHappeningNotFound
		}
		return nil, fmt.Errorf("delete happening: %w", err)
	}
	return mh.toDomain(), nil
}

// AddAttendee pushes the attendee in a single guarded update: the filter
// rejects documents already holding an identical attendee, so the common
// duplicate path is atomic per document.
func (r *MongoHappeningRepository) AddAttendee(ctx context.Context, happeningID string, attendee domain.Attendee) (*domain.Happening, error) {
	oid, err := primitive.ObjectIDFromHex(happeningID)
	if err != nil {
		return nil, domain.ErrHappeningNotFound
	}

	filter := bson.M{
		"_id": oid,
		"clients": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{
					"name":          attendee.Name,
					"surname":       attendee.Surname,
					"email":         attendee.Email,
					"date_of_birth": attendee.DateOfBirth,
				},
			},
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"clients": attendee}})
	if err != nil {
		return nil, fmt.Errorf("add attendee: %w", err)
	}
	if res.ModifiedCount == 0 {
		// Either the happening is gone or the guard matched an existing
		// attendee; disambiguate with a plain lookup.
		if _, lookupErr := r.FindByID(ctx, happeningID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, domain.ErrAlreadyRegistered
	}

	return r.FindByID(ctx, happeningID)
}

// FlattenAttendees runs the aggregation pipeline that concatenates the
// attendee lists of every happening owned by one promoter.
func (r *MongoHappeningRepository) FlattenAttendees(ctx context.Context, promoterID string) ([]domain.Attendee, error) {
	oid, err := primitive.ObjectIDFromHex(promoterID)
	if err != nil {
		return []domain.Attendee{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"promoter": oid}}},
		{{Key: "$unwind", Value: "$clients"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$clients"}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("flatten attendees: %w", err)
	}
	defer cur.Close(ctx)

	attendees := []domain.Attendee{}
	if err := cur.All(ctx, &attendees); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	return attendees, nil
}
