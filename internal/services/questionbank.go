package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QuestionBank stores exemplar interview questions by category and retrieves
// the ones most similar to a candidate's CV. It only enriches prompts: every
// caller must treat a lookup failure as a warning, never as a pipeline error.
type QuestionBank interface {
	InitCollection() error
	UpsertExemplar(ctx context.Context, exemplarID, category, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, category string, limit int) ([]ExemplarResult, error)
}

type ExemplarResult struct {
	ID       string
	Score    float32
	Text     string
	Category string
}

type questionBank struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQuestionBank(urlStr, apiKey, collectionName string) (QuestionBank, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &questionBank{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QuestionBank.
func (q *questionBank) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Question bank collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Question bank collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertExemplar implements QuestionBank.
func (q *questionBank) UpsertExemplar(ctx context.Context, exemplarID, category, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"exemplar_id": exemplarID,
			"category":    category,
			"text":        text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert exemplar: %w", err)
	}

	return nil
}

// SearchSimilar implements QuestionBank.
func (q *questionBank) SearchSimilar(ctx context.Context, queryEmbedding []float32, category string, limit int) ([]ExemplarResult, error) {
	var filter *qdrant.Filter
	if category != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("category", category),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []ExemplarResult
	for _, point := range searchResult {
		payload := point.Payload

		result := ExemplarResult{Score: point.Score}

		if id, ok := payload["exemplar_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if cat, ok := payload["category"]; ok {
			if val, ok := cat.GetKind().(*qdrant.Value_StringValue); ok {
				result.Category = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
