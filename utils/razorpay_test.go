package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_Mh4ex1"
	paymentID := "pay_Nk2aa9"

	sig := signPayment(orderID, paymentID, secret)
	assert.True(t, VerifyRazorpaySignature(orderID, paymentID, sig, secret))
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	secret := "test_secret"
	sig := signPayment("order_A", "pay_B", secret)

	assert.False(t, VerifyRazorpaySignature("order_A", "pay_C", sig, secret), "other payment id")
	assert.False(t, VerifyRazorpaySignature("order_X", "pay_B", sig, secret), "other order id")
	assert.False(t, VerifyRazorpaySignature("order_A", "pay_B", sig, "wrong_secret"), "wrong secret")
	assert.False(t, VerifyRazorpaySignature("order_A", "pay_B", "", secret), "empty signature")
	assert.False(t, VerifyRazorpaySignature("order_A", "pay_B", sig+"00", secret), "extended signature")
}
