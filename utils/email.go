package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/petandco/PetAndCo/models"
	"gopkg.in/gomail.v2"
)

// sendMail delivers an HTML email through the configured SMTP account.
func sendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

func orderStatusSubject(status string) string {
	switch status {
	case models.OrderStatusPaid:
		return "Payment received"
	case models.OrderStatusShipped:
		return "Your order is on its way"
	case models.OrderStatusDelivered:
		return "Your order has been delivered"
	case models.OrderStatusCancelled:
		return "Your order has been cancelled"
	default:
		return "Order update"
	}
}

// NotifyOrderStatusChanged emails the customer about an order status change.
// It is fire and forget: failures are logged and swallowed, never propagated
// to the order flow that triggered it.
func NotifyOrderStatusChanged(order *models.Order, oldStatus, newStatus string) {
	email := order.User.Email
	if email == "" {
		LogInfo("No user email for order %d, skipping status notification", order.ID)
		return
	}

	subject := fmt.Sprintf("%s - %s Order #%d", orderStatusSubject(newStatus), AppName, order.ID)
	body := fmt.Sprintf(`
		<h2>Order #%d</h2>
		<p>Hi %s,</p>
		<p>Your order status changed from <b>%s</b> to <b>%s</b>.</p>
		<p>Order total: ₹%.2f</p>
		<p>Thank you for shopping with %s!</p>
	`, order.ID, order.User.FirstName, oldStatus, newStatus, order.Total, AppName)

	go func() {
		if err := sendMail(email, subject, body); err != nil {
			LogError("Failed to send order status email for order %d: %v", order.ID, err)
			return
		}
		LogInfo("Order status email sent for order %d to %s", order.ID, email)
	}()
}

// SendBookingConfirmation emails a service booking confirmation. Failures
// are returned so the caller can log them, but booking creation never fails
// because of email.
func SendBookingConfirmation(booking *models.ServiceBooking) error {
	if booking.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Your %s appointment is confirmed - %s", booking.ServiceName, AppName)
	body := fmt.Sprintf(`
		<h2>Booking #%d confirmed</h2>
		<p>Hi %s,</p>
		<p>Your %s appointment for %s is booked for %s (%s).</p>
		<p>Amount: ₹%.2f</p>
		<p>We look forward to seeing %s!</p>
	`, booking.ID, booking.OwnerName, booking.ServiceType, booking.PetName,
		booking.Date.Format("2006-01-02"), booking.PreferredTime, booking.TotalAmount, booking.PetName)
	return sendMail(booking.Email, subject, body)
}

// SendBookingStatusUpdate emails the customer when a booking's status
// changes.
func SendBookingStatusUpdate(booking *models.ServiceBooking, oldStatus, newStatus string) error {
	email := booking.Email
	if email == "" && booking.User != nil {
		email = booking.User.Email
	}
	if email == "" {
		return nil
	}
	subject := fmt.Sprintf("Booking #%d update - %s", booking.ID, AppName)
	body := fmt.Sprintf(`
		<h2>Booking #%d</h2>
		<p>Hi %s,</p>
		<p>Your %s booking for %s moved from <b>%s</b> to <b>%s</b>.</p>
	`, booking.ID, booking.OwnerName, booking.ServiceName, booking.PetName, oldStatus, newStatus)
	return sendMail(email, subject, body)
}
