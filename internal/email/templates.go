package email

import (
	"fmt"
	"strings"

	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/notify"
)

// BuildOrderConfirmationBody builds the HTML body for the order
// confirmation email.
func BuildOrderConfirmationBody(o *order.Order) string {
	var itemsHTML strings.Builder
	for _, item := range o.Items {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			item.Product.Name,
			item.Quantity,
			FormatAmount(item.Price),
			FormatAmount(item.Price*int64(item.Quantity)),
		))
	}

	deliveryFee := FormatAmount(o.DeliveryFee)
	if o.DeliveryFee == 0 {
		deliveryFee = "FREE"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #16a34a 0%%, #15803d 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Thank you for your order</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Your order has been placed and is being prepared for delivery.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #16a34a; padding-bottom: 10px;">Order details</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Item</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">Qty</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Price</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Amount</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr>
				<td style="padding: 6px 12px; color: #666;">Subtotal</td>
				<td style="padding: 6px 12px; text-align: right;">%s</td>
			</tr>
			<tr>
				<td style="padding: 6px 12px; color: #666;">Tax (5%%)</td>
				<td style="padding: 6px 12px; text-align: right;">%s</td>
			</tr>
			<tr>
				<td style="padding: 6px 12px; color: #666;">Delivery fee</td>
				<td style="padding: 6px 12px; text-align: right;">%s</td>
			</tr>
			<tr style="border-top: 2px solid #eee;">
				<td style="padding: 12px; font-weight: bold;">Total</td>
				<td style="padding: 12px; text-align: right; font-size: 20px; font-weight: bold; color: #16a34a;">%s</td>
			</tr>
		</table>

		<p style="font-size: 14px; color: #666;">Estimated delivery: %s</p>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This is an automated message. If you have any questions about your order, please contact support.
		</p>
	</div>
</body>
</html>`,
		o.ID,
		itemsHTML.String(),
		FormatAmount(o.Subtotal),
		FormatAmount(o.Tax),
		deliveryFee,
		FormatAmount(o.Total),
		o.EstimatedDelivery.Format("Mon, 2 Jan 2006 at 3:04 PM"),
	)
}

// BuildNotificationBody builds a short HTML body for a lifecycle
// notification email.
func BuildNotificationBody(n notify.Notification) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 20px;">%s</h1>
	<p>%s</p>
	<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
	<p style="font-size: 12px; color: #999;">This is an automated message from QuickBasket.</p>
</body>
</html>`, n.Title, n.Description)
}

// FormatAmount renders a paise amount as rupees, e.g. 123456 -> "₹1,234.56".
func FormatAmount(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}
	rupees := paise / 100
	fraction := paise % 100

	str := fmt.Sprintf("%d", rupees)
	var grouped strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		grouped.WriteString(str[:remainder])
		if len(str) > remainder {
			grouped.WriteString(",")
		}
	}
	for i := remainder; i < len(str); i += 3 {
		grouped.WriteString(str[i : i+3])
		if i+3 < len(str) {
			grouped.WriteString(",")
		}
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, grouped.String(), fraction)
}
