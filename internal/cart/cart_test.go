package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAddItem_MergesByID(t *testing.T) {
	c := Load(state.NewMemStore())

	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), ""))
	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), ""))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestAddItem_PriceFrozenAtAddTime(t *testing.T) {
	c := Load(state.NewMemStore())

	require.NoError(t, c.AddItem("p1", "Caldo", d("10.00"), ""))
	// Catalog price changed between adds; the frozen price wins.
	require.NoError(t, c.AddItem("p1", "Caldo", d("12.00"), ""))

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(d("10.00")))
	assert.True(t, c.Total().Equal(d("20.00")))
}

func TestUpdateQuantity(t *testing.T) {
	c := Load(state.NewMemStore())
	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), ""))

	require.NoError(t, c.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, c.Items()[0].Quantity)

	// Zero and negative both remove the entry entirely.
	require.NoError(t, c.UpdateQuantity("p1", 0))
	assert.Empty(t, c.Items())

	require.NoError(t, c.AddItem("p2", "Suco", d("6.00"), ""))
	require.NoError(t, c.UpdateQuantity("p2", -1))
	assert.Empty(t, c.Items())

	// Unknown id is a no-op.
	require.NoError(t, c.UpdateQuantity("ghost", 3))
	assert.Empty(t, c.Items())
}

func TestTotals(t *testing.T) {
	c := Load(state.NewMemStore())
	assert.True(t, c.Total().IsZero())
	assert.Zero(t, c.TotalItems())

	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), ""))
	require.NoError(t, c.AddItem("p2", "Caldo", d("14.90"), ""))
	require.NoError(t, c.UpdateQuantity("p1", 3))

	assert.True(t, c.Total().Equal(d("40.40")), "got %s", c.Total())
	assert.Equal(t, 4, c.TotalItems())

	require.NoError(t, c.RemoveItem("p2"))
	assert.True(t, c.Total().Equal(d("25.50")))

	require.NoError(t, c.RemoveItem("p2")) // already gone
	require.NoError(t, c.Clear())
	assert.True(t, c.Total().IsZero())
	assert.Zero(t, c.TotalItems())
}

func TestCart_PersistsAcrossLoads(t *testing.T) {
	store := state.NewMemStore()

	c := Load(store)
	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), "https://img/p1.png"))
	require.NoError(t, c.AddItem("p2", "Suco", d("6.00"), ""))
	require.NoError(t, c.AddItem("p1", "Pastel", d("8.50"), ""))

	reloaded := Load(store)
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID, "insertion order preserved")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "https://img/p1.png", items[0].ImageURL)
	assert.True(t, reloaded.Total().Equal(d("23.00")))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 8,50", FormatBRL(d("8.5")))
	assert.Equal(t, "R$ 40,40", FormatBRL(d("40.4")))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	// Display rounding only: internal thirds stay exact, display shows 2dp.
	third := d("10").Div(d("3"))
	assert.Equal(t, "R$ 3,33", FormatBRL(third))
}
