package notifier

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-confirmation/shared/pkg/models"
)

func anaOrder() models.Order {
	return models.Order{
		ID:            "123",
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Total:         decimal.RequireFromString("45.50"),
		Items: []models.LineItem{
			{
				ProductName: "Widget",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("20.00"),
				LineTotal:   decimal.RequireFromString("40.00"),
			},
			{
				ProductName: "Pin",
				Quantity:    1,
				UnitPrice:   decimal.RequireFromString("5.50"),
				LineTotal:   decimal.RequireFromString("5.50"),
			},
		},
	}
}

func TestRenderBody_Example(t *testing.T) {
	want := "Hello Ana,\n" +
		"\n" +
		"Thank you for your purchase. Here are the details of your order:\n" +
		"\n" +
		"Order ID: 123\n" +
		"Products:\n" +
		"- Widget (2 x $20.0): $40.0\n" +
		"- Pin (1 x $5.5): $5.5\n" +
		"\n" +
		"Total purchase amount: $45.5\n" +
		"\n" +
		"Thank you for shopping with us.\n" +
		"Best regards,\n" +
		"Your Store"

	assert.Equal(t, want, RenderBody(anaOrder()))
}

func TestRenderBody_ExampleLines(t *testing.T) {
	lines := strings.Split(RenderBody(anaOrder()), "\n")

	assert.Contains(t, lines, "Order ID: 123")
	assert.Contains(t, lines, "- Widget (2 x $20.0): $40.0")
	assert.Contains(t, lines, "- Pin (1 x $5.5): $5.5")
	assert.Contains(t, lines, "Total purchase amount: $45.5")
}

func TestRenderBody_Deterministic(t *testing.T) {
	o := anaOrder()
	first := RenderBody(o)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, RenderBody(o))
	}
}

func TestRenderBody_ProductLineCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 50} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			o := models.Order{ID: "o-1", CustomerEmail: "c@example.com", Items: []models.LineItem{}}
			for i := 0; i < n; i++ {
				o.Items = append(o.Items, models.LineItem{
					ProductName: "item-" + strconv.Itoa(i),
					Quantity:    i + 1,
					UnitPrice:   decimal.NewFromInt(1),
					LineTotal:   decimal.NewFromInt(int64(i + 1)),
				})
			}

			var products []string
			for _, line := range strings.Split(RenderBody(o), "\n") {
				if strings.HasPrefix(line, "- ") {
					products = append(products, line)
				}
			}
			require.Len(t, products, n)
			for i, line := range products {
				assert.True(t, strings.HasPrefix(line, "- item-"+strconv.Itoa(i)+" ("), "line %d out of order: %s", i, line)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20.00", "20.0"},
		{"20", "20.0"},
		{"5.50", "5.5"},
		{"45.5", "45.5"},
		{"0", "0.0"},
		{"0.125", "0.125"},
		{"-3.10", "-3.1"},
		{"1999.99", "1999.99"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestBuildEmail(t *testing.T) {
	o := anaOrder()
	e := BuildEmail(o, "shop@example.com", "Purchase Confirmation")

	assert.Equal(t, "shop@example.com", e.Source)
	assert.Equal(t, []string{"ana@example.com"}, e.To)
	assert.Equal(t, "Purchase Confirmation - Order 123", e.Subject)
	assert.Equal(t, RenderBody(o), e.TextBody)
}
