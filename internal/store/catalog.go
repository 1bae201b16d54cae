package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Catalog is the Mongo-backed CatalogRepository implementation, operating
// over the four instrument-kind collections in db.MarketData.
type Catalog struct {
	db *DB
}

// NewCatalog builds a Catalog repository bound to db.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) collection(kind string) *mongo.Collection {
	return c.db.MarketData.Collection(kind)
}

// ReplaceAll implements CatalogRepository. Readers racing this call may
// observe an empty collection between the delete and the insert; this is
// the accepted visibility contract for snapshot replacement.
func (c *Catalog) ReplaceAll(ctx context.Context, kind string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}

	coll := c.collection(kind)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("store: catalog %s: delete all: %w", kind, err)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("store: catalog %s: insert many: %w", kind, err)
	}
	return nil
}

// FindByFigi implements CatalogRepository.
func (c *Catalog) FindByFigi(ctx context.Context, kind, figi string) (map[string]interface{}, error) {
	var out bson.M
	err := c.collection(kind).FindOne(ctx, bson.M{"figi": figi}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: catalog %s: find %s: %w", kind, figi, err)
	}
	return out, nil
}

// DistinctFigis implements CatalogRepository.
func (c *Catalog) DistinctFigis(ctx context.Context, kind string) ([]string, error) {
	raw, err := c.collection(kind).Distinct(ctx, "figi", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: catalog %s: distinct figi: %w", kind, err)
	}
	figis := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			figis = append(figis, s)
		}
	}
	return figis, nil
}
