package marks

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type libraryStub struct{}

func (libraryStub) Contains(title string, year int) bool {
	return title == "Inception"
}

func TestStoreRefresh(t *testing.T) {
	failing := Source{
		Name: "radarr",
		Kind: KindOwned,
		Fetch: func(context.Context) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	store := NewStore(zerolog.Nop(),
		Static("config", KindOwned, []string{"tt1", "tt2"}),
		Static("config", KindHidden, []string{"tt3"}),
		Static("config", KindWatched, nil),
		failing,
	)
	store.AddSource(Static("overseerr", KindWatchlist, []string{"tt4", "", "tt4"}))

	result, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"radarr"}, result.Failed)
	assert.Equal(t, 2, result.Counts[KindOwned])
	assert.Equal(t, 1, result.Counts[KindWatchlist])

	st := store.Snapshot()
	assert.True(t, st.Owned.Has("tt1"))
	assert.True(t, st.Hidden.Has("tt3"))
	assert.False(t, st.Watched.Has("tt1"))
	assert.True(t, st.Watchlist.Has("tt4"))
}

func TestStoreMarkIsCopyOnWrite(t *testing.T) {
	store := NewStore(zerolog.Nop())

	before := store.Snapshot()
	require.NoError(t, store.Mark(KindHidden, "tt9"))
	after := store.Snapshot()

	assert.False(t, before.Hidden.Has("tt9"), "earlier snapshot must not change")
	assert.True(t, after.Hidden.Has("tt9"))

	require.NoError(t, store.Unmark(KindHidden, "tt9"))
	assert.False(t, store.Snapshot().Hidden.Has("tt9"))
	assert.True(t, after.Hidden.Has("tt9"))

	assert.Error(t, store.Mark(Kind("favourite"), "tt1"))
	assert.Error(t, store.Mark(KindOwned, ""))
}

func TestStoreLibrarySurvivesRefresh(t *testing.T) {
	store := NewStore(zerolog.Nop(), Static("config", KindOwned, []string{"tt1"}))
	store.SetLibrary(libraryStub{})

	_, err := store.Refresh(context.Background())
	require.NoError(t, err)

	st := store.Snapshot()
	require.NotNil(t, st.Library)
	assert.True(t, st.Library.Contains("Inception", 2010))
	assert.True(t, st.Owned.Has("tt1"))
}

func TestStoreRefreshCancelled(t *testing.T) {
	store := NewStore(zerolog.Nop(), Static("config", KindOwned, []string{"tt1"}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, store.Snapshot().Owned.Has("tt1"))
}
