package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore adapts a Firestore client to the Store capability set.
func NewFirestoreStore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

func (s *firestoreStore) StreamCollection(ctx context.Context, collection string) ([]Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	return drain(iter)
}

func (s *firestoreStore) GetDocument(ctx context.Context, collection, id string) (map[string]any, bool, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return snap.Data(), true, nil
}

func (s *firestoreStore) SetDocument(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	doc := s.client.Collection(collection).Doc(id)

	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	_, err := doc.Set(ctx, data, opts...)
	return err
}

func (s *firestoreStore) UpdateDocument(ctx context.Context, collection, id string, updates map[string]any) error {
	fields := make([]firestore.Update, 0, len(updates))
	for k, v := range updates {
		fields = append(fields, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, fields)
	return err
}

func (s *firestoreStore) DeleteDocument(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *firestoreStore) QueryRange(ctx context.Context, collection, field string, low, high any) ([]Document, error) {
	iter := s.client.Collection(collection).
		Where(field, ">=", low).
		Where(field, "<=", high).
		Documents(ctx)
	defer iter.Stop()

	return drain(iter)
}

func (s *firestoreStore) QueryEqual(ctx context.Context, collection, field string, value any) ([]Document, error) {
	iter := s.client.Collection(collection).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	return drain(iter)
}

func (s *firestoreStore) NewGeneratedID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

func drain(iter *firestore.DocumentIterator) ([]Document, error) {
	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
