package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestInvoiceItem_ComputeTotal(t *testing.T) {
	t.Run("hourly is hours times rate", func(t *testing.T) {
		it := InvoiceItem{ServiceType: ServiceTypeHourly, Hours: d("10"), RatePerHour: d("50")}
		assert.True(t, it.ComputeTotal().Equal(d("500")))
	})

	t.Run("fixed is price times quantity", func(t *testing.T) {
		it := InvoiceItem{ServiceType: ServiceTypeFixed, FixedPrice: d("200"), Quantity: 2}
		assert.True(t, it.ComputeTotal().Equal(d("400")))
	})

	t.Run("zero quantity counts as one", func(t *testing.T) {
		it := InvoiceItem{ServiceType: ServiceTypeSubscription, FixedPrice: d("99.90")}
		assert.True(t, it.ComputeTotal().Equal(d("99.90")))
	})
}

func TestInvoiceItem_Validate(t *testing.T) {
	assert.Error(t, InvoiceItem{ServiceType: "weekly"}.Validate())
	assert.Error(t, InvoiceItem{ServiceType: ServiceTypeHourly, Hours: d("0"), RatePerHour: d("50")}.Validate())
	assert.Error(t, InvoiceItem{ServiceType: ServiceTypeFixed, FixedPrice: d("0")}.Validate())
	assert.Error(t, InvoiceItem{ServiceType: ServiceTypeFixed, FixedPrice: d("10"), Quantity: -1}.Validate())
	assert.NoError(t, InvoiceItem{ServiceType: ServiceTypeHourly, Hours: d("1.5"), RatePerHour: d("80")}.Validate())
	assert.NoError(t, InvoiceItem{ServiceType: ServiceTypeSubscription, FixedPrice: d("49.90")}.Validate())
}

func TestInvoice_Recalculate(t *testing.T) {
	t.Run("derives subtotal tax and total", func(t *testing.T) {
		rate := d("10")
		inv := Invoice{
			Items: []InvoiceItem{
				{ServiceType: ServiceTypeHourly, Hours: d("10"), RatePerHour: d("50")},
				{ServiceType: ServiceTypeFixed, FixedPrice: d("400"), Quantity: 1},
			},
			TaxRate: &rate,
		}
		inv.Recalculate()

		assert.True(t, inv.Subtotal.Equal(d("900")), "subtotal %s", inv.Subtotal)
		require.NotNil(t, inv.TaxAmount)
		assert.True(t, inv.TaxAmount.Equal(d("90")), "tax %s", inv.TaxAmount)
		assert.True(t, inv.TotalAmount.Equal(d("990")), "total %s", inv.TotalAmount)
		assert.True(t, inv.Items[0].Total.Equal(d("500")))
		assert.True(t, inv.Items[1].Total.Equal(d("400")))
	})

	t.Run("no tax rate means total equals subtotal", func(t *testing.T) {
		inv := Invoice{Items: []InvoiceItem{{ServiceType: ServiceTypeFixed, FixedPrice: d("150"), Quantity: 2}}}
		inv.Recalculate()

		assert.Nil(t, inv.TaxAmount)
		assert.True(t, inv.TotalAmount.Equal(d("300")))
	})

	t.Run("idempotent", func(t *testing.T) {
		rate := d("7.5")
		inv := Invoice{
			Items:   []InvoiceItem{{ServiceType: ServiceTypeHourly, Hours: d("3"), RatePerHour: d("120")}},
			TaxRate: &rate,
		}
		inv.Recalculate()
		first := inv.TotalAmount
		inv.Recalculate()

		assert.True(t, inv.TotalAmount.Equal(first))
	})

	t.Run("clearing the tax rate drops the tax amount", func(t *testing.T) {
		rate := d("10")
		inv := Invoice{
			Items:   []InvoiceItem{{ServiceType: ServiceTypeFixed, FixedPrice: d("100"), Quantity: 1}},
			TaxRate: &rate,
		}
		inv.Recalculate()
		require.NotNil(t, inv.TaxAmount)

		inv.TaxRate = nil
		inv.Recalculate()

		assert.Nil(t, inv.TaxAmount)
		assert.True(t, inv.TotalAmount.Equal(d("100")))
	})
}

func TestInvoice_EffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("pending past due reads overdue", func(t *testing.T) {
		inv := Invoice{Status: InvoiceStatusPending, DueDate: now.AddDate(0, 0, -1)}
		assert.Equal(t, InvoiceStatusOverdue, inv.EffectiveStatus(now))
	})

	t.Run("pending before due stays pending", func(t *testing.T) {
		inv := Invoice{Status: InvoiceStatusPending, DueDate: now.AddDate(0, 0, 1)}
		assert.Equal(t, InvoiceStatusPending, inv.EffectiveStatus(now))
	})

	t.Run("paid never becomes overdue", func(t *testing.T) {
		inv := Invoice{Status: InvoiceStatusPaid, DueDate: now.AddDate(0, -1, 0)}
		assert.Equal(t, InvoiceStatusPaid, inv.EffectiveStatus(now))
	})
}
