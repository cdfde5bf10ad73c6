package order

import (
	"fmt"
	"strings"
)

// Message renders the confirmation text sent to the shop's WhatsApp.
func Message(storeName string, o Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order from %s Website*\n\n", storeName)
	fmt.Fprintf(&b, "*Order ID:* %s\n", o.ID)
	fmt.Fprintf(&b, "*Customer:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "*Phone:* %s\n", o.CustomerPhone)
	fmt.Fprintf(&b, "*Address:* %s\n\n", o.CustomerAddress)
	b.WriteString("*Items:*\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s (x%d) - PKR %s\n", it.Name, it.Quantity, it.Subtotal().String())
	}
	fmt.Fprintf(&b, "\n*Total Amount:* PKR %s\n", o.Total.StringFixed(2))
	payment := "Paid Online"
	if o.PaymentMethod == MethodCOD {
		payment = "Cash on Delivery"
	}
	fmt.Fprintf(&b, "*Payment:* %s\n", payment)
	return b.String()
}
