package notifier

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"order-confirmation/services/confirmation-service/internal/mail"
	"order-confirmation/shared/pkg/models"
)

// RenderBody renders the plain-text confirmation for an order. Items are
// listed in the order received; amounts are printed as received.
func RenderBody(o models.Order) string {
	var b strings.Builder
	b.WriteString("Hello ")
	b.WriteString(o.CustomerName)
	b.WriteString(",\n\n")
	b.WriteString("Thank you for your purchase. Here are the details of your order:\n\n")
	b.WriteString("Order ID: ")
	b.WriteString(o.ID)
	b.WriteString("\n")

	b.WriteString("Products:\n")
	for _, it := range o.Items {
		b.WriteString("- ")
		b.WriteString(it.ProductName)
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(it.Quantity))
		b.WriteString(" x $")
		b.WriteString(FormatAmount(it.UnitPrice))
		b.WriteString("): $")
		b.WriteString(FormatAmount(it.LineTotal))
		b.WriteString("\n")
	}

	b.WriteString("\nTotal purchase amount: $")
	b.WriteString(FormatAmount(o.Total))
	b.WriteString("\n\n")
	b.WriteString("Thank you for shopping with us.\n")
	b.WriteString("Best regards,\nYour Store")
	return b.String()
}

// FormatAmount prints the shortest decimal text of v with at least one
// fractional digit: 20.00 -> "20.0", 5.50 -> "5.5".
func FormatAmount(v decimal.Decimal) string {
	s := v.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Subject is "<prefix> - Order <id>".
func Subject(prefix, orderID string) string {
	return prefix + " - Order " + orderID
}

// BuildEmail addresses the confirmation to the order's customer.
func BuildEmail(o models.Order, sender, subjectPrefix string) mail.Email {
	return mail.Email{
		Source:   sender,
		To:       []string{o.CustomerEmail},
		Subject:  Subject(subjectPrefix, o.ID),
		TextBody: RenderBody(o),
	}
}
