package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDeliveryAvailable(t *testing.T) {
	assert.True(t, IsDeliveryAvailable("560001"))
	assert.True(t, IsDeliveryAvailable(" 560095 "))
	assert.True(t, IsDeliveryAvailable("560 034"))

	assert.False(t, IsDeliveryAvailable("110001"))
	assert.False(t, IsDeliveryAvailable("56001"))
	assert.False(t, IsDeliveryAvailable("5600011"))
	assert.False(t, IsDeliveryAvailable("56000a"))
	assert.False(t, IsDeliveryAvailable(""))
}

func TestGetDeliveryInfo(t *testing.T) {
	info := GetDeliveryInfo("560001")
	assert.True(t, info.Available)
	assert.Equal(t, "Available", info.Status)

	info = GetDeliveryInfo("400001")
	assert.False(t, info.Available)
	assert.Contains(t, info.Message, "Bangalore")
}
