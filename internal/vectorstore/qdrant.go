package vectorstore

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core/model"
)

type Qdrant struct {
	client *qdrant.Client
	dim    int
	log    zerolog.Logger
}

func NewQdrant(cfg config.QdrantConfig, dim int, log zerolog.Logger) (*Qdrant, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("Connected to Qdrant")
	return &Qdrant{client: client, dim: dim, log: log}, nil
}

func (q *Qdrant) CreateCollection(ctx context.Context, name string, dim int) error {
	exists, err := q.client.CollectionExists(ctx, name)
	if err != nil {
		return apperrors.Unavailable("vectorstore.CreateCollection", err)
	}
	if exists {
		if err := q.client.DeleteCollection(ctx, name); err != nil {
			return apperrors.Unavailable("vectorstore.CreateCollection", err)
		}
		q.log.Info().Str("collection", name).Msg("Dropped existing collection")
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return apperrors.Unavailable("vectorstore.CreateCollection", err)
	}
	q.dim = dim
	return nil
}

func (q *Qdrant) Upsert(ctx context.Context, name string, points []model.EmbeddingPoint) error {
	if len(points) == 0 {
		return nil
	}
	if err := checkPoints(q.dim, points); err != nil {
		return err
	}

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		payload, err := qdrant.TryValueMap(p.Payload.Map())
		if err != nil {
			return fmt.Errorf("point %d: %w", p.ID, err)
		}
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: payload,
		})
	}

	wait := true
	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Wait:           &wait,
		Points:         structs,
	})
	if err != nil {
		return apperrors.Unavailable("vectorstore.Upsert", err)
	}
	return nil
}

func (q *Qdrant) Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error) {
	if err := checkDimension(q.dim, vector); err != nil {
		return nil, err
	}

	n := uint64(limit)
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &n,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, apperrors.Unavailable("vectorstore.Search", err)
	}

	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		hits = append(hits, Hit{
			ID:      p.GetId().GetNum(),
			Score:   p.GetScore(),
			Payload: fromValueMap(p.GetPayload()),
		})
	}
	return hits, nil
}

func (q *Qdrant) Count(ctx context.Context, name string) (uint64, error) {
	exact := true
	n, err := q.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: name,
		Exact:          &exact,
	})
	if err != nil {
		return 0, apperrors.Unavailable("vectorstore.Count", err)
	}
	return n, nil
}

func (q *Qdrant) Close() error {
	return q.client.Close()
}

func fromValueMap(m map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = fromValue(v)
	}
	return out
}

func fromValue(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_StructValue:
		return fromValueMap(kind.StructValue.GetFields())
	case *qdrant.Value_ListValue:
		values := kind.ListValue.GetValues()
		list := make([]any, 0, len(values))
		for _, item := range values {
			list = append(list, fromValue(item))
		}
		return list
	default:
		return nil
	}
}

// DropCollection removes a collection if it exists.
func (q *Qdrant) DropCollection(ctx context.Context, name string) error {
	if err := q.client.DeleteCollection(ctx, name); err != nil {
		return apperrors.Unavailable("vectorstore.DropCollection", err)
	}
	return nil
}
