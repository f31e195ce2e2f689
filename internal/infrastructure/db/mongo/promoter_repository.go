package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const promoterCollection = "promoters"

// MongoPromoterRepository is the credential store: promoter records keyed
// by generated ObjectID.
type MongoPromoterRepository struct {
	coll *mongo.Collection
}

func NewPromoterRepository(db *mongo.Database) *MongoPromoterRepository {
	return &MongoPromoterRepository{coll: db.Collection(promoterCollection)}
}

type mongoPromoter struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Surname      string             `bson:"surname"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	GoogleID     string             `bson:"google_id,omitempty"`
	Avatar       string             `bson:"avatar,omitempty"`
	Role         string             `bson:"role"`
}

func (m mongoPromoter) toDomain() *domain.Promoter {
	return &domain.Promoter{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Surname:      m.Surname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		GoogleID:     m.GoogleID,
		Avatar:       m.Avatar,
		Role:         m.Role,
	}
}

func (r *MongoPromoterRepository) Create(ctx context.Context, promoter *domain.Promoter) (*domain.Promoter, error) {
	doc := mongoPromoter{
		Name:         promoter.Name,
		Surname:      promoter.Surname,
		Email:        promoter.Email,
		PasswordHash: promoter.PasswordHash,
		GoogleID:     promoter.GoogleID,
		Avatar:       promoter.Avatar,
		Role:         promoter.Role,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("insert promoter: %w", err)
	}

	created := *promoter
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoPromoterRepository) FindByEmail(ctx context.Context, email string) (*domain.Promoter, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoPromoterRepository) FindByID(ctx context.Context, id string) (*domain.Promoter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPromoterNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoPromoterRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.Promoter, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *MongoPromoterRepository) findOne(ctx context.Context, filter bson.M) (*domain.Promoter, error) {
	var mp mongoPromoter
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPromoterNotFound
		}
		return nil, fmt.Errorf("find promoter: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPromoterRepository) UpdateByID(ctx context.Context, id string, update ports.PromoterUpdate) (*domain.Promoter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPromoterNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Surname != nil {
		set["surname"] = *update.Surname
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mp mongoPromoter
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPromoterNotFound
		}
		return nil, fmt.Errorf("update promoter: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPromoterRepository) DeleteByID(ctx context.Context, id string) (*domain.Promoter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPromoterNotFound
	}

	var mp mongoPromoter
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPromoterNotFound
		}
		return nil, fmt.Errorf("delete promoter: %w", err)
	}
	return mp.toDomain(), nil
}
