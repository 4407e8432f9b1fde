package mystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument[T any] struct {
	UID   string `bson:"_id"`
	Value T      `bson:"value"`
}

type mongoStore[T any] struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func newMongoStore[T any](c context.Context, uri string) (*mongoStore[T], func(), error) {
	client, err := mongo.Connect(c, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating mongo-client: %s", err)
	}

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "storefront"
	}

	return &mongoStore[T]{
			client:     client,
			collection: client.Database(dbName).Collection(kindOf[T]()),
		}, func() {
			_ = client.Disconnect(context.Background())
		}, nil
}

// RunInTransaction needs a replica set; standalone mongo instances reject
// multi-document transactions.
func (s *mongoStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("error starting mongo session: %s", err)
	}
	defer session.EndSession(c)

	_, err = session.WithTransaction(c, func(sc mongo.SessionContext) (any, error) {
		return nil, f(sc)
	})

	return err
}

func (s *mongoStore[T]) Put(c context.Context, uid string, value T) error {
	doc := mongoDocument[T]{UID: uid, Value: value}

	_, err := s.collection.ReplaceOne(c, bson.M{"_id": uid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error storing document %s: %s", uid, err)
	}

	return nil
}

func (s *mongoStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	doc := mongoDocument[T]{}

	err := s.collection.FindOne(c, bson.M{"_id": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return doc.Value, false, nil
		}
		return doc.Value, false, fmt.Errorf("error fetching document %s: %s", uid, err)
	}

	return doc.Value, true, nil
}

func (s *mongoStore[T]) Delete(c context.Context, uid string) error {
	_, err := s.collection.DeleteOne(c, bson.M{"_id": uid})
	if err != nil {
		return fmt.Errorf("error deleting document %s: %s", uid, err)
	}

	return nil
}

func (s *mongoStore[T]) List(c context.Context) ([]T, error) {
	return s.find(c, bson.M{}, nil)
}

func (s *mongoStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	criteria := bson.M{}
	for _, f := range filters {
		if f.Compare == "=" {
			criteria["value."+strings.ToLower(f.Field)] = f.Value
		}
	}

	findOptions := options.Find()
	if orderByField != "" {
		direction := 1
		field := orderByField
		if strings.HasPrefix(orderByField, "-") {
			direction = -1
			field = strings.TrimPrefix(orderByField, "-")
		}
		findOptions = findOptions.SetSort(bson.D{{Key: "value." + strings.ToLower(field), Value: direction}})
	}

	return s.find(c, criteria, findOptions)
}

func (s *mongoStore[T]) find(c context.Context, criteria bson.M, findOptions *options.FindOptions) ([]T, error) {
	opts := []*options.FindOptions{}
	if findOptions != nil {
		opts = append(opts, findOptions)
	}

	cursor, err := s.collection.Find(c, criteria, opts...)
	if err != nil {
		return nil, fmt.Errorf("error querying collection %s: %s", s.collection.Name(), err)
	}
	defer cursor.Close(c)

	docs := []mongoDocument[T]{}
	err = cursor.All(c, &docs)
	if err != nil {
		return nil, fmt.Errorf("error decoding documents of %s: %s", s.collection.Name(), err)
	}

	results := make([]T, 0, len(docs))
	for _, doc := range docs {
		results = append(results, doc.Value)
	}

	return results, nil
}
