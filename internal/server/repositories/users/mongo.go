package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding user documents.
const CollectionName = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Avatar    string             `bson:"avatar"`
	Password  string             `bson:"password"`
	Followers []followerDocument `bson:"followers"`
	Date      time.Time          `bson:"date"`
}

type followerDocument struct {
	User primitive.ObjectID `bson:"user"`
	Date time.Time          `bson:"date"`
}

func (d *userDocument) toModel() *models.User {
	u := &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Avatar:       d.Avatar,
		PasswordHash: d.Password,
		Date:         d.Date,
		Followers:    make([]models.Follower, 0, len(d.Followers)),
	}
	for _, f := range d.Followers {
		u.Followers = append(u.Followers, models.Follower{User: f.User.Hex(), Date: f.Date})
	}
	return u
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := &userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Password:  user.PasswordHash,
		Followers: []followerDocument{},
		Date:      time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) AddFollower(ctx context.Context, userID, followerID string, at time.Time) (*models.User, error) {
	oid, fid, err := objectIDs(userID, followerID)
	if err != nil {
		return nil, err
	}
	if oid == fid {
		return nil, common.ErrSelfFollow
	}

	filter := bson.M{"_id": oid, "followers.user": bson.M{"$ne": fid}}
	update := bson.M{"$push": bson.M{"followers": bson.M{
		"$each":     bson.A{followerDocument{User: fid, Date: at.UTC().Truncate(time.Millisecond)}},
		"$position": 0,
	}}}

	return r.updateFollowers(ctx, oid, filter, update, common.ErrAlreadyFollowed)
}

func (r *MongoRepository) RemoveFollower(ctx context.Context, userID, followerID string) (*models.User, error) {
	oid, fid, err := objectIDs(userID, followerID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "followers.user": fid}
	update := bson.M{"$pull": bson.M{"followers": bson.M{"user": fid}}}

	return r.updateFollowers(ctx, oid, filter, update, common.ErrNotFollowed)
}

// updateFollowers applies update only when filter matches. A miss is then
// resolved into NotFound or the supplied conflict error.
func (r *MongoRepository) updateFollowers(ctx context.Context, oid primitive.ObjectID, filter, update bson.M, conflict error) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toModel(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}
	return nil, conflict
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func objectIDs(userID, followerID string) (primitive.ObjectID, primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrorNotFound
	}
	fid, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid follower id %q: %w", followerID, common.ErrorNotFound)
	}
	return oid, fid, nil
}

var _ Repository = (*MongoRepository)(nil)
