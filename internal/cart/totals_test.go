package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
)

var itbis = decimal.NewFromFloat(0.18)

func TestComputeTotalsITBIS(t *testing.T) {
	node := newTestNode(t)
	c := New()

	_, err := c.AddService(testService(node, "Servicio A", 150, catalogdomain.UnitWeight), decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = c.AddService(testService(node, "Servicio B", 80, catalogdomain.UnitCount), decimal.NewFromInt(1))
	require.NoError(t, err)

	totals := c.Totals(itbis)
	assert.Equal(t, "380.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "68.40", totals.Tax.StringFixed(2))
	assert.Equal(t, "448.40", totals.Total.StringFixed(2))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, itbis)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	items := []LineItem{
		{UnitPrice: decimal.NewFromFloat(33.33), Quantity: decimal.NewFromFloat(1.5)},
	}
	totals := ComputeTotals(items, itbis)

	// 33.33 * 1.5 = 49.995, rounded to 50.00 at the line.
	assert.Equal(t, "50.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "9.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "59.00", totals.Total.StringFixed(2))
}

func TestComputeTotalsNoFloatDrift(t *testing.T) {
	node := newTestNode(t)
	c := New()
	svc := testService(node, "Lavado por libra", 0.10, catalogdomain.UnitWeight)

	line, err := c.AddService(svc, decimal.NewFromInt(1))
	require.NoError(t, err)
	for i := 0; i < 999; i++ {
		require.NoError(t, c.Increment(line.ID))
	}

	totals := c.Totals(decimal.Zero)
	assert.Equal(t, "100.00", totals.Subtotal.StringFixed(2))
}

func TestTaxMatchesRoundedSubtotalProduct(t *testing.T) {
	for _, subtotal := range []float64{0, 0.01, 99.99, 380, 1234.56} {
		items := []LineItem{
			{UnitPrice: decimal.NewFromFloat(subtotal), Quantity: decimal.NewFromInt(1)},
		}
		totals := ComputeTotals(items, itbis)
		want := decimal.NewFromFloat(subtotal).Mul(itbis).Round(2)
		assert.True(t, totals.Tax.Equal(want), "subtotal %v: tax %s want %s", subtotal, totals.Tax, want)
		assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
	}
}
