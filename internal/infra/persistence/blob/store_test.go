package blob

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"geolink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dir
}

func TestZoneRepository_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewZoneRepository(store)
	ctx := context.Background()

	zones := []entity.Zone{
		{ID: uuid.New(), Name: "Home", Lat: -23.55, Lng: -46.63, Radius: 100, IsActive: true},
		{ID: uuid.New(), Name: "School", Lat: -23.56, Lng: -46.64, Radius: 250, IsActive: true},
	}
	require.NoError(t, repo.SaveZones(ctx, zones))

	loaded, err := repo.LoadZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, zones, loaded)
}

func TestZoneRepository_MissingBlobIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewZoneRepository(store)

	zones, err := repo.LoadZones(context.Background())
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestZoneRepository_MalformedBlobTreatedAsAbsent(t *testing.T) {
	store, dir := newTestStore(t)
	repo := NewZoneRepository(store)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zones.json"), []byte("{not json"), 0o644))

	zones, err := repo.LoadZones(context.Background())
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestActivityRepository_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewActivityRepository(store)
	ctx := context.Background()

	entries := []entity.ActivityEntry{
		{ID: uuid.New(), PointName: "Home", Type: entity.EventEntry, Timestamp: 1700000000123},
	}
	require.NoError(t, repo.SaveEntries(ctx, entries))

	loaded, err := repo.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestSettingsRepository_IdentityAbsentThenSaved(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewSettingsRepository(store)
	ctx := context.Background()

	identity, err := repo.LoadIdentity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)

	want := entity.Identity{ID: uuid.New(), Name: "Me", Color: "#6366F1"}
	require.NoError(t, repo.SaveIdentity(ctx, want))

	identity, err = repo.LoadIdentity(ctx)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, want, *identity)
}

func TestSettingsRepository_RoomCodeAndTheme(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewSettingsRepository(store)
	ctx := context.Background()

	code, err := repo.LoadRoomCode(ctx)
	require.NoError(t, err)
	assert.Empty(t, code)

	require.NoError(t, repo.SaveRoomCode(ctx, "family2024"))
	code, err = repo.LoadRoomCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "family2024", code)

	require.NoError(t, repo.SaveTheme(ctx, "dark"))
	theme, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
