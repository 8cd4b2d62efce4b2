// Package search defines the external index contract used by the recipe
// store and the search router. The index is optional: deployments without
// one use Noop, which forces the database fallback.
package search

import "context"

// Document is the indexed projection of a recipe. Structured ingredients
// are flattened to text before indexing so they stay searchable.
type Document struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
}

// Index is the strategy interface for the external search index.
type Index interface {
	// Add inserts or replaces documents by id.
	Add(ctx context.Context, docs []Document) error
	// Remove deletes documents by id. Unknown ids are ignored.
	Remove(ctx context.Context, ids []string) error
	// Query returns matching ids in relevance order plus the total match
	// count for the given page.
	Query(ctx context.Context, query string, page, perPage int) (ids []string, total int64, err error)
}

// ChangeSet accumulates the documents touched by one unit of work. It is
// built explicitly during a mutating operation and flushed to the index
// once the transaction commits; there is no global commit-listener state.
type ChangeSet struct {
	upserted []Document
	removed  []string
}

// Upsert records a document to be added or reindexed.
func (c *ChangeSet) Upsert(doc Document) {
	c.upserted = append(c.upserted, doc)
}

// Remove records a document id to be dropped from the index.
func (c *ChangeSet) Remove(id string) {
	c.removed = append(c.removed, id)
}

// Empty reports whether the change set carries no work.
func (c *ChangeSet) Empty() bool {
	return len(c.upserted) == 0 && len(c.removed) == 0
}

// Flush forwards the accumulated changes to the index, one notification
// per changed document.
func (c *ChangeSet) Flush(ctx context.Context, idx Index) error {
	if len(c.upserted) > 0 {
		if err := idx.Add(ctx, c.upserted); err != nil {
			return err
		}
	}
	if len(c.removed) > 0 {
		if err := idx.Remove(ctx, c.removed); err != nil {
			return err
		}
	}
	return nil
}

// Noop is the index used when no external search engine is configured.
// Writes are dropped and every query reports zero matches, which routes
// all searches to the database fallback.
type Noop struct{}

func (Noop) Add(ctx context.Context, docs []Document) error { return nil }

func (Noop) Remove(ctx context.Context, ids []string) error { return nil }

func (Noop) Query(ctx context.Context, query string, page, perPage int) ([]string, int64, error) {
	return nil, 0, nil
}
