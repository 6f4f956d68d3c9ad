package contact

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

// MongoStore persists contact records in a MongoDB collection.
type MongoStore struct {
	cli  *mongo.Client
	coll *mongo.Collection
}

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone"`
	Email     string             `bson:"email"`
	Age       string             `bson:"age"`
	Address   string             `bson:"address"`
	Desc      string             `bson:"desc"`
	CreatedAt time.Time          `bson:"created_at"`
}

func NewMongoStore(ctx context.Context, uri, db, coll string) (*MongoStore, error) {
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
	return &MongoStore{cli: cli, coll: cli.Database(db).Collection(coll)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.cli.Disconnect(ctx)
}

func (s *MongoStore) Create(ctx context.Context, c *Contact) error {
	if c == nil {
		return errors.New("contact is nil")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name required")
	}
	doc := contactDoc{
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Age:       c.Age,
		Address:   c.Address,
		Desc:      c.Desc,
		CreatedAt: c.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	c.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Contact, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Contact
	for cur.Next(ctx) {
		var doc contactDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, Contact{
			ID:        doc.ID.Hex(),
			Name:      doc.Name,
			Phone:     doc.Phone,
			Email:     doc.Email,
			Age:       doc.Age,
			Address:   doc.Address,
			Desc:      doc.Desc,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cur.Err()
}
