package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDrawers(t *testing.T, sessions int) Drawers {
	t.Helper()
	d, err := NewDrawers(DefaultCatalog(), sessions)
	require.NoError(t, err)
	return d
}

func TestCatalogLinksResolve(t *testing.T) {
	c := DefaultCatalog()
	for _, e := range c.Entries() {
		assert.True(t, c.IsEntry(e.ID))
	}
	for id, v := range c.views {
		for _, r := range v.Rows {
			if r.Link == "" {
				continue
			}
			_, ok := c.View(r.Link)
			assert.True(t, ok, "%s links to missing view %s", id, r.Link)
		}
	}
}

func TestDrawerFlow(t *testing.T) {
	d := newDrawers(t, DefaultSessions)

	st, err := d.Open("civic", "obd2-codes")
	require.NoError(t, err)
	assert.Equal(t, "obd2-codes", st.Current.ViewID)
	assert.Nil(t, st.Previous)
	require.NotNil(t, st.View)
	assert.Equal(t, KindTable, st.View.Kind)

	st, err = d.Drill("civic", "code-P0300")
	require.NoError(t, err)
	assert.Equal(t, "code-P0300", st.Current.ViewID)
	assert.Equal(t, "obd2-codes", st.Previous.ViewID)

	st = d.Back("civic")
	assert.Equal(t, "obd2-codes", st.Current.ViewID)
	assert.Nil(t, st.Previous)

	st = d.Close("civic")
	assert.Nil(t, st.Current)
	assert.Nil(t, st.View)
}

func TestDrawerRejections(t *testing.T) {
	d := newDrawers(t, DefaultSessions)

	_, err := d.Open("civic", "code-P0300")
	assert.ErrorIs(t, err, ErrUnknownEntry)

	_, err = d.Drill("civic", "code-P0300")
	assert.ErrorIs(t, err, ErrClosed)

	_, err = d.Open("civic", "obd2-codes")
	require.NoError(t, err)

	_, err = d.Drill("civic", "proc-coil-swap")
	assert.ErrorIs(t, err, ErrNotLinked)

	st := d.State("civic")
	assert.Equal(t, "obd2-codes", st.Current.ViewID)
}

func TestDrawersAreIsolatedPerSession(t *testing.T) {
	d := newDrawers(t, DefaultSessions)

	_, err := d.Open("civic", "tsb")
	require.NoError(t, err)

	assert.Nil(t, d.State("tacoma").Current)
	assert.Equal(t, "tsb", d.State("civic").Current.ViewID)
}

func TestLeastRecentDrawerIsEvicted(t *testing.T) {
	d := newDrawers(t, 2)

	for _, s := range []string{"civic", "tacoma"} {
		_, err := d.Open(s, "tsb")
		require.NoError(t, err)
	}
	d.State("civic")

	_, err := d.Open("f150", "maintenance")
	require.NoError(t, err)

	assert.Equal(t, "tsb", d.State("civic").Current.ViewID)
	assert.Equal(t, "maintenance", d.State("f150").Current.ViewID)
	assert.Nil(t, d.State("tacoma").Current, "oldest session dropped")
}

func TestNewDrawersRejectsBadSize(t *testing.T) {
	_, err := NewDrawers(DefaultCatalog(), 0)
	assert.Error(t, err)
}
