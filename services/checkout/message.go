package checkout

import (
	"fmt"
	"html"
	"strings"

	"github.com/MarcGrol/onlineshop/services/order"
)

// FormatOrderMessage renders the order for a chat that understands Telegram HTML.
func FormatOrderMessage(o order.Order) string {
	esc := html.EscapeString

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "<b>New order %s</b>\n", esc(o.UID))
	fmt.Fprintf(&sb, "Customer: %s\n", esc(o.Customer.Name))
	fmt.Fprintf(&sb, "Phone: %s\n", esc(o.Customer.Phone))
	if o.Customer.Email != "" {
		fmt.Fprintf(&sb, "Email: %s\n", esc(o.Customer.Email))
	}
	fmt.Fprintf(&sb, "Address: %s\n", esc(formatAddress(o.Address)))
	if o.Address.Comment != "" {
		fmt.Fprintf(&sb, "Comment: %s\n", esc(o.Address.Comment))
	}
	fmt.Fprintf(&sb, "Delivery: %s (%s)\n", esc(o.DeliveryMethod), o.ShippingCost.StringFixed(2))
	fmt.Fprintf(&sb, "%s\n", esc(o.DeliveryNote))
	sb.WriteString("\n<b>Items</b>\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&sb, "- %s x%d @ %s = %s\n", esc(l.ProductName), l.Quantity, l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nSubtotal: %s\n", o.Subtotal.StringFixed(2))
	fmt.Fprintf(&sb, "Shipping: %s\n", o.ShippingCost.StringFixed(2))
	fmt.Fprintf(&sb, "<b>Total: %s</b>", o.Total.StringFixed(2))

	return sb.String()
}

func formatAddress(a order.Address) string {
	parts := []string{}
	for _, p := range []string{a.City, strings.TrimSpace(a.Street + " " + a.House), a.Apartment} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
