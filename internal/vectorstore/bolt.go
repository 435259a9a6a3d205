package vectorstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
)

// Bolt is a single-file index for local runs. Search scans the whole
// collection, which is fine for a catalog of a few thousand courses.
type Bolt struct {
	db  *bbolt.DB
	dim int
	log zerolog.Logger
}

type boltRecord struct {
	Vector  []float32          `json:"vector"`
	Payload model.PointPayload `json:"payload"`
}

func NewBolt(path string, dim int, log zerolog.Logger) (*Bolt, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt index '%s': %w", path, err)
	}

	log.Info().Str("path", path).Msg("Opened bolt index")
	return &Bolt{db: db, dim: dim, log: log}, nil
}

func (b *Bolt) CreateCollection(ctx context.Context, name string, dim int) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(name)) != nil {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket([]byte(name))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %q: %w", name, err)
	}
	b.dim = dim
	return nil
}

func (b *Bolt) Upsert(ctx context.Context, name string, points []model.EmbeddingPoint) error {
	if err := checkPoints(b.dim, points); err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		for _, p := range points {
			data, err := json.Marshal(boltRecord{Vector: p.Vector, Payload: p.Payload})
			if err != nil {
				return err
			}
			if err := bucket.Put(idKey(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error) {
	if err := checkDimension(b.dim, vector); err != nil {
		return nil, err
	}

	var hits []Hit
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return fmt.Errorf("collection %q does not exist", name)
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec boltRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				b.log.Warn().Err(err).Uint64("id", binary.BigEndian.Uint64(k)).Msg("skipping unreadable point")
				return nil
			}
			hits = append(hits, Hit{
				ID:      binary.BigEndian.Uint64(k),
				Score:   cosineSimilarity(vector, rec.Vector),
				Payload: rec.Payload.Map(),
			})
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.Unavailable("vectorstore.Search", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (b *Bolt) Count(ctx context.Context, name string) (uint64, error) {
	var n int
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return nil
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return uint64(n), err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
