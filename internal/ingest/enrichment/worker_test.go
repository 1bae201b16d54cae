package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aristath/marketdata/internal/status"
	"github.com/aristath/marketdata/internal/store"
)

type fakeStatusRepo struct {
	upserts []map[string]interface{}
}

func (f *fakeStatusRepo) CountDocuments(ctx context.Context) (int64, error) { return 1, nil }

func (f *fakeStatusRepo) InsertInitialDocument(ctx context.Context, fields map[string]interface{}) error {
	return nil
}

func (f *fakeStatusRepo) UpsertFields(ctx context.Context, fields map[string]interface{}) error {
	f.upserts = append(f.upserts, fields)
	return nil
}

type fakeTracking struct {
	groups   []store.TrackingGroup
	docs     map[primitive.ObjectID]map[string]interface{}
	replaced map[primitive.ObjectID]map[string]interface{}
}

func (f *fakeTracking) EnabledGroupedByFigi(ctx context.Context) ([]store.TrackingGroup, error) {
	return f.groups, nil
}

func (f *fakeTracking) FindByID(ctx context.Context, id primitive.ObjectID) (map[string]interface{}, error) {
	return f.docs[id], nil
}

func (f *fakeTracking) ReplaceByID(ctx context.Context, id primitive.ObjectID, doc map[string]interface{}) error {
	if f.replaced == nil {
		f.replaced = map[primitive.ObjectID]map[string]interface{}{}
	}
	f.replaced[id] = doc
	return nil
}

type fakeCatalog struct {
	byKindFigi map[string]map[string]map[string]interface{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{byKindFigi: map[string]map[string]map[string]interface{}{}}
}

func (f *fakeCatalog) put(kind, figi string, doc map[string]interface{}) {
	if f.byKindFigi[kind] == nil {
		f.byKindFigi[kind] = map[string]map[string]interface{}{}
	}
	f.byKindFigi[kind][figi] = doc
}

func (f *fakeCatalog) ReplaceAll(ctx context.Context, kind string, docs []interface{}) error {
	return nil
}

func (f *fakeCatalog) FindByFigi(ctx context.Context, kind, figi string) (map[string]interface{}, error) {
	return f.byKindFigi[kind][figi], nil
}

func (f *fakeCatalog) DistinctFigis(ctx context.Context, kind string) ([]string, error) {
	return nil, nil
}

func TestRunOnce_EnrichesFromSharesCatalog(t *testing.T) {
	id := primitive.NewObjectID()
	tracking := &fakeTracking{
		groups: []store.TrackingGroup{{ID: id, FIGI: "FIGI_SBER"}},
		docs: map[primitive.ObjectID]map[string]interface{}{
			id: {"_id": id, "user_setting": bson.M{"figi": "FIGI_SBER", "enabled": true}},
		},
	}
	catalog := newFakeCatalog()
	catalog.put(store.CollShares, "FIGI_SBER", map[string]interface{}{
		"figi": "FIGI_SBER", "ticker": "SBER", "name": "Sberbank", "currency": "rub", "lot": int32(10),
		"first_1day_candle_date": bson.M{"seconds": int64(1000), "nanos": int32(0), "iso": "2020-01-01T00:00:00Z"},
	})

	w := New(tracking, catalog, status.New(&fakeStatusRepo{}), zerolog.Nop())
	w.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, w.RunOnce(context.Background()))

	replaced := tracking.replaced[id]
	require.NotNil(t, replaced)
	data := replaced["data"].(bson.M)
	assert.Equal(t, "SBER", data["ticker"])
	assert.Equal(t, "share", data["instrument_type"])
	assert.Equal(t, int32(10), data["lot"])
	assert.Equal(t, "2020-01-01T00:00:00Z", data["first_available_date"])
	assert.Equal(t, "2024-06-10T12:00:00Z", data["last_update"])

	// the original user_setting field must survive the replace
	assert.Equal(t, bson.M{"figi": "FIGI_SBER", "enabled": true}, replaced["user_setting"])
}

func TestRunOnce_NoCatalogMatchSkipsWithoutError(t *testing.T) {
	id := primitive.NewObjectID()
	tracking := &fakeTracking{
		groups: []store.TrackingGroup{{ID: id, FIGI: "FIGI_UNKNOWN"}},
		docs: map[primitive.ObjectID]map[string]interface{}{
			id: {"_id": id},
		},
	}
	catalog := newFakeCatalog()

	w := New(tracking, catalog, status.New(&fakeStatusRepo{}), zerolog.Nop())
	require.NoError(t, w.RunOnce(context.Background()))
	assert.Nil(t, tracking.replaced[id])
}

func TestRunOnce_SearchesCatalogsInOrder(t *testing.T) {
	id := primitive.NewObjectID()
	tracking := &fakeTracking{
		groups: []store.TrackingGroup{{ID: id, FIGI: "FIGI_BOND"}},
		docs: map[primitive.ObjectID]map[string]interface{}{
			id: {"_id": id},
		},
	}
	catalog := newFakeCatalog()
	catalog.put(store.CollBonds, "FIGI_BOND", map[string]interface{}{
		"figi": "FIGI_BOND", "ticker": "OFZ", "name": "OFZ Bond", "currency": "rub", "lot": int32(1),
	})

	w := New(tracking, catalog, status.New(&fakeStatusRepo{}), zerolog.Nop())
	require.NoError(t, w.RunOnce(context.Background()))

	data := tracking.replaced[id]["data"].(bson.M)
	assert.Equal(t, "bond", data["instrument_type"])
	assert.NotContains(t, data, "first_available_date")
}
