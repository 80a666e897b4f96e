// Package archive stores immutable family-tree snapshots in MongoDB.
//
// A snapshot is the full normalized graph plus a content hash and an
// optional label. Snapshots are append-only: pushing the same content
// twice is detected by hash and returns the existing entry instead of
// writing a duplicate.
package archive

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sbhuiyan/kintree/pkg/cache"
	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/tree"
)

const (
	defaultDatabase   = "kintree"
	defaultCollection = "snapshots"
	connectTimeout    = 10 * time.Second
)

// Snapshot is one archived tree state.
type Snapshot struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Label      string             `bson:"label,omitempty"`
	Hash       string             `bson:"hash"`
	FamilyName string             `bson:"family_name"`
	Members    int                `bson:"members"`
	CreatedAt  time.Time          `bson:"created_at"`
	Data       tree.Data          `bson:"data"`
}

// Store is a MongoDB-backed snapshot archive.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens the archive at the given MongoDB URI.
func Connect(ctx context.Context, uri string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeNetwork, err, "connecting to archive")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, kterrors.Wrap(kterrors.ErrCodeNetwork, err, "pinging archive")
	}

	return &Store{
		client: client,
		coll:   client.Database(defaultDatabase).Collection(defaultCollection),
	}, nil
}

// Push archives a tree state. If a snapshot with the same content hash
// already exists, its ID is returned and nothing is written.
func (s *Store) Push(ctx context.Context, data *tree.Data, label string) (string, error) {
	raw, err := tree.Marshal(data)
	if err != nil {
		return "", err
	}
	hash := cache.Hash(raw)

	var existing Snapshot
	err = s.coll.FindOne(ctx, bson.M{"hash": hash}).Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return "", kterrors.Wrap(kterrors.ErrCodeInternal, err, "checking for existing snapshot")
	}

	snap := Snapshot{
		Label:      label,
		Hash:       hash,
		FamilyName: data.Meta.FamilyName,
		Members:    len(data.Nodes),
		CreatedAt:  time.Now().UTC(),
		Data:       *data,
	}
	res, err := s.coll.InsertOne(ctx, snap)
	if err != nil {
		return "", kterrors.Wrap(kterrors.ErrCodeInternal, err, "writing snapshot")
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Pull retrieves a snapshot by hex ID or label. Labels resolve to the
// newest matching snapshot.
func (s *Store) Pull(ctx context.Context, ref string) (*tree.Data, error) {
	filter := bson.M{"label": ref}
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		filter = bson.M{"_id": id}
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var snap Snapshot
	if err := s.coll.FindOne(ctx, filter, opts).Decode(&snap); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, kterrors.New(kterrors.ErrCodeNotFound, "no snapshot matching %q", ref)
		}
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "reading snapshot")
	}
	return &snap.Data, nil
}

// List returns snapshot metadata, newest first, without the graph payload.
func (s *Store) List(ctx context.Context, limit int64) ([]Snapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"data": 0})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "listing snapshots")
	}
	defer cur.Close(ctx)

	var snaps []Snapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "decoding snapshots")
	}
	return snaps, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
