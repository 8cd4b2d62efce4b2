package search

import (
	"context"
	"encoding/json"

	"github.com/meilisearch/meilisearch-go"
)

const recipeIndexName = "recipes"

// Meilisearch backs the Index interface with a Meilisearch instance.
type Meilisearch struct {
	client meilisearch.ServiceManager
	index  meilisearch.IndexManager
}

// NewMeilisearch connects to the given host. The API key may be empty for
// unsecured development instances.
func NewMeilisearch(host, apiKey string) *Meilisearch {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &Meilisearch{
		client: client,
		index:  client.Index(recipeIndexName),
	}
}

func (m *Meilisearch) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := m.index.AddDocuments(docs, nil)
	return err
}

func (m *Meilisearch) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := m.index.DeleteDocuments(ids, nil)
	return err
}

func (m *Meilisearch) Query(ctx context.Context, query string, page, perPage int) ([]string, int64, error) {
	result, err := m.index.SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Offset: int64((page - 1) * perPage),
		Limit:  int64(perPage),
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if id, ok := hitID(hit); ok {
			ids = append(ids, id)
		}
	}
	return ids, result.EstimatedTotalHits, nil
}

// hitID pulls the document id out of a raw search hit. Hits carry fields
// as raw JSON, so the id needs an unmarshal of its own.
func hitID(hit meilisearch.Hit) (string, bool) {
	raw, ok := hit["id"]
	if !ok {
		return "", false
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", false
	}
	return id, true
}
