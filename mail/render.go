// Package mail renders order confirmations and delivers them over SMTP.
package mail

import (
	"fmt"

	"storefront/entities"
)

// RenderConfirmation builds the subject and HTML body for a confirmation
// message. Rendering is deterministic, so a redelivered message produces the
// exact same email.
func RenderConfirmation(msg entities.OrderConfirmationRequested) (subject, htmlBody string) {
	subject = fmt.Sprintf("Order Confirmation - %s", msg.OrderNumber)
	htmlBody = fmt.Sprintf(`
      <h2>Order Confirmation</h2>
      <p>Hi %s,</p>
      <p>Your order has been confirmed!</p>
      <p><strong>Order Number:</strong> %s</p>
      <p><strong>Product:</strong> %s</p>
      <p><strong>Total Amount:</strong> $%s</p>
      <p><strong>Payment Method:</strong> %s</p>
      <p>Thank you for your order!</p>
    `, msg.Username, msg.OrderNumber, msg.ProductName, msg.TotalAmount.StringFixed(2), entities.PaymentMethodCashOnDelivery)

	return subject, htmlBody
}
