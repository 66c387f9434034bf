package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreDoc is the document shape written for each key.
type firestoreDoc struct {
	Value string `firestore:"value"`
}

// Firestore stores each key as a document in one collection.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestore connects to projectID. credentialsFile may be empty to use
// application default credentials (or the emulator when
// FIRESTORE_EMULATOR_HOST is set).
func NewFirestore(ctx context.Context, projectID, collection, credentialsFile string) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Firestore{client: client, collection: collection}, nil
}

func (f *Firestore) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var doc firestoreDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", false, fmt.Errorf("decoding document %s: %w", key, err)
	}

	return doc.Value, true, nil
}

func (f *Firestore) Set(ctx context.Context, key, value string) error {
	_, err := f.client.Collection(f.collection).Doc(key).Set(ctx, firestoreDoc{Value: value})
	return err
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
