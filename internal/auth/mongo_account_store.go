package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountStore persists accounts in a MongoDB collection with unique
// indexes on username and email. The indexes, not the application's
// pre-flight lookup, are what make registration races safe: a losing
// concurrent insert comes back as a duplicate-key write error.
type MongoAccountStore struct {
	cli  *mongo.Client
	coll *mongo.Collection
}

type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	PassHash  string             `bson:"pass_hash"`
	Role      Role               `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
}

func NewMongoAccountStore(ctx context.Context, uri, db, coll string) (*MongoAccountStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}

	c := cli.Database(db).Collection(coll)

	for _, field := range []string{"username", "email"} {
		_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			_ = cli.Disconnect(context.Background())
			return nil, err
		}
	}

	return &MongoAccountStore{cli: cli, coll: c}, nil
}

// Close releases the underlying client.
func (s *MongoAccountStore) Close(ctx context.Context) error {
	return s.cli.Disconnect(ctx)
}

func (s *MongoAccountStore) Create(ctx context.Context, a *Account) error {
	doc := accountDoc{
		Username:  strings.TrimSpace(a.Username),
		Email:     strings.TrimSpace(a.Email),
		PassHash:  a.PassHash,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateError{Field: duplicateField(err)}
		}
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	a.Username = doc.Username
	a.Email = doc.Email
	a.CreatedAt = doc.CreatedAt
	return nil
}

// duplicateField pulls the colliding field out of the duplicate-key error.
// The server message names the violated index ("username_1" / "email_1").
func duplicateField(err error) string {
	var wex mongo.WriteException
	if errors.As(err, &wex) {
		for _, we := range wex.WriteErrors {
			if we.Code != 11000 {
				continue
			}
			if strings.Contains(we.Message, "email") {
				return "email"
			}
			return "username"
		}
	}
	return "username"
}

func (s *MongoAccountStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*Account, error) {
	identifier = strings.TrimSpace(identifier)
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}

	var doc accountDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		Email:     doc.Email,
		PassHash:  doc.PassHash,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *MongoAccountStore) UpdateRole(ctx context.Context, username string, role Role) error {
	res, err := s.coll.UpdateOne(
		ctx,
		bson.M{"username": strings.TrimSpace(username)},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
