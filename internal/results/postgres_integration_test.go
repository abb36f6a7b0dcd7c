package results

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/urolinq-questionnaire-engine/internal/database"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("results"),
		postgres.WithUsername("urolinq"),
		postgres.WithPassword("urolinq"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("PostgreSQL container unavailable: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	url, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	runner, err := database.NewMigrationRunner(url, logger)
	require.NoError(t, err)
	require.NoError(t, runner.Up(ctx))
	require.NoError(t, runner.Close())

	store, err := NewPostgresStoreFromURL(url)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, sampleResult("a", domain.IPSS, 0)))
	require.NoError(t, store.Save(ctx, sampleResult("b", domain.MIPRO, time.Hour)))
	assert.ErrorIs(t, store.Save(ctx, sampleResult("a", domain.IPSS, 0)), domain.ErrAlreadyExists)

	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 77, b.Score)
	assert.Equal(t, domain.RISK_LOW, b.RiskTier)
	assert.True(t, b.Flags.Has(domain.FLAG_LOW_CONCERN))
	assert.Equal(t, domain.Slider(10), b.Answers["fertility_confidence"])

	list, err := store.List(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	count, err := store.Count(ctx, domain.IPSS)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))
	imported, skipped, err := store.ImportJSON(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Equal(t, 2, skipped)

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
