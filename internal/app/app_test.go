package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescoach-ai/internal/blobstore"
	"salescoach-ai/internal/config"
	"salescoach-ai/internal/indexer"
)

func TestOpenBlobs_FS(t *testing.T) {
	cfg := &config.Config{BlobBackend: config.BlobBackendFS, BlobDir: t.TempDir()}

	store, err := openBlobs(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := store.(*blobstore.FSStore)
	assert.True(t, ok, "openBlobs() = %T, want *blobstore.FSStore", store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenBlobs_S3RequiresBucket(t *testing.T) {
	cfg := &config.Config{BlobBackend: config.BlobBackendS3, S3Region: "us-east-1"}

	_, err := openBlobs(context.Background(), cfg)
	assert.Error(t, err)
}

func TestTokenCounter(t *testing.T) {
	counter := tokenCounter()
	require.NotNil(t, counter)
	assert.Positive(t, counter.CountTokens("Ask open questions before pitching."))
}

func TestApp_CloseReverseOrder(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	a := &App{closers: []func() error{
		func() error { order = append(order, "db"); return nil },
		func() error { order = append(order, "index"); return boom },
	}}

	err := a.Close()

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"index", "db"}, order)
	assert.NoError(t, a.Close(), "second Close() should be a no-op")
}

func TestApp_ShutdownWaitsForJobs(t *testing.T) {
	ctx := context.Background()
	p := indexer.NewPipeline(nil, nil, nil, nil, nil, nil, indexer.Options{})
	require.NoError(t, p.StartReindex(ctx, "t1", nil))

	closed := false
	a := &App{Pipeline: p, closers: []func() error{
		func() error { closed = true; return nil },
	}}

	require.NoError(t, a.Shutdown(ctx))
	assert.True(t, closed)
	assert.ErrorIs(t, p.StartReindex(ctx, "t1", nil), indexer.ErrPipelineClosed)
}
