package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketdata/internal/domain"
)

type fakeStatusRepo struct {
	docCount int64
	inserted map[string]interface{}
	upserts  []map[string]interface{}
	failNext bool
}

func (f *fakeStatusRepo) CountDocuments(ctx context.Context) (int64, error) {
	return f.docCount, nil
}

func (f *fakeStatusRepo) InsertInitialDocument(ctx context.Context, fields map[string]interface{}) error {
	if f.failNext {
		return errors.New("insert failed")
	}
	f.inserted = fields
	f.docCount = 1
	return nil
}

func (f *fakeStatusRepo) UpsertFields(ctx context.Context, fields map[string]interface{}) error {
	if f.failNext {
		return errors.New("upsert failed")
	}
	f.upserts = append(f.upserts, fields)
	return nil
}

func TestEnsureInitialized_SeedsAllFeedsNotStarted(t *testing.T) {
	repo := &fakeStatusRepo{}
	reg := New(repo)

	require.NoError(t, reg.EnsureInitialized(context.Background()))

	require.NotNil(t, repo.inserted)
	for _, feed := range domain.AllFeeds {
		assert.Equal(t, string(domain.FeedNotStarted), repo.inserted[feed+"_status"])
	}
	assert.Contains(t, repo.inserted, "initialized_at")
}

func TestEnsureInitialized_SkipsWhenAlreadyPresent(t *testing.T) {
	repo := &fakeStatusRepo{docCount: 1}
	reg := New(repo)

	require.NoError(t, reg.EnsureInitialized(context.Background()))
	assert.Nil(t, repo.inserted)
}

func TestSetUpdatingAndSetReady(t *testing.T) {
	repo := &fakeStatusRepo{}
	reg := New(repo)

	require.NoError(t, reg.SetUpdating(context.Background(), domain.FeedShares))
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "updating", repo.upserts[0][domain.FeedShares+"_status"])
	assert.NotEmpty(t, repo.upserts[0][domain.FeedShares+"_update_at"])

	require.NoError(t, reg.SetReady(context.Background(), domain.FeedShares))
	require.Len(t, repo.upserts, 2)
	assert.Equal(t, "ready", repo.upserts[1][domain.FeedShares+"_status"])
}

func TestSetUpdating_PropagatesError(t *testing.T) {
	repo := &fakeStatusRepo{failNext: true}
	reg := New(repo)

	err := reg.SetUpdating(context.Background(), domain.FeedShares)
	assert.Error(t, err)
}

func TestNowMoscowFormat(t *testing.T) {
	ts := nowMoscow()
	_, err := time.Parse("02.01.2006 15:04:05", ts)
	assert.NoError(t, err)
}
