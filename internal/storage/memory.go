package storage

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store used as an isolated fixture in tests and
// for local development without a running database. It supports the subset of
// behavior the repositories rely on: top-level equality filters and $set
// updates, with mongo's modified-count semantics (a $set that changes nothing
// reports zero modified documents).
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]bson.M
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]bson.M{}}
}

func (s *MemoryStore) FindOne(_ context.Context, collection string, filter bson.M, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.data[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if ok {
			return decodeInto(doc, out)
		}
	}
	return ErrNoDocuments
}

func (s *MemoryStore) Find(_ context.Context, collection string, filter bson.M, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("storage: Find requires a pointer to a slice, got %T", out)
	}

	slice := ptr.Elem()
	slice.SetLen(0)
	for _, doc := range s.data[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		elem := reflect.New(slice.Type().Elem())
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	ptr.Elem().Set(slice)
	return nil
}

func (s *MemoryStore) InsertOne(_ context.Context, collection string, doc any) (InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := toDocument(doc)
	if err != nil {
		return InsertResult{}, err
	}

	id, ok := normalized["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		normalized["_id"] = id
	}

	s.data[collection] = append(s.data[collection], normalized)
	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *MemoryStore) UpdateOne(_ context.Context, collection string, filter, update bson.M) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := update["$set"].(bson.M)
	if !ok || len(update) != 1 {
		return UpdateResult{}, fmt.Errorf("storage: MemoryStore only supports $set updates, got %v", update)
	}

	for _, doc := range s.data[collection] {
		matched, err := matches(doc, filter)
		if err != nil {
			return UpdateResult{}, err
		}
		if !matched {
			continue
		}

		changed := false
		for key, value := range set {
			normalized, err := normalize(value)
			if err != nil {
				return UpdateResult{}, err
			}
			if !reflect.DeepEqual(doc[key], normalized) {
				doc[key] = normalized
				changed = true
			}
		}
		if changed {
			return UpdateResult{ModifiedCount: 1}, nil
		}
		return UpdateResult{}, nil
	}
	return UpdateResult{}, nil
}

func (s *MemoryStore) DeleteOne(_ context.Context, collection string, filter bson.M) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.data[collection]
	for i, doc := range docs {
		matched, err := matches(doc, filter)
		if err != nil {
			return DeleteResult{}, err
		}
		if matched {
			s.data[collection] = append(docs[:i], docs[i+1:]...)
			return DeleteResult{DeletedCount: 1}, nil
		}
	}
	return DeleteResult{}, nil
}

// matches checks top-level equality of every filter field against doc.
func matches(doc, filter bson.M) (bool, error) {
	for key, want := range filter {
		normalized, err := normalize(want)
		if err != nil {
			return false, err
		}
		if !reflect.DeepEqual(doc[key], normalized) {
			return false, nil
		}
	}
	return true, nil
}

// toDocument round-trips v through bson so stored documents carry the same
// types a real server round trip would produce.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeInto(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func normalize(v any) (any, error) {
	wrapped, err := toDocument(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return wrapped["v"], nil
}
