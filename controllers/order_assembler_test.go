package controllers

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB connects to the database named by TEST_DATABASE_DSN and
// migrates a clean schema. Tests that need it are skipped when the variable
// is unset.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&models.CouponRedemption{}, &models.Coupon{},
		&models.OrderItem{}, &models.Order{},
		&models.CheckoutSelection{}, &models.CartItem{},
		&models.Address{}, &models.Product{}, &models.User{},
	))
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Address{},
		&models.CartItem{}, &models.CheckoutSelection{},
		&models.Order{}, &models.OrderItem{},
		&models.Coupon{}, &models.CouponRedemption{},
	))

	config.DB = db
	return db
}

type fixture struct {
	user      models.User
	product   models.Product
	address   models.Address
	selection models.CheckoutSelection
}

// seedCheckout creates a user with one cart line (qty x price) and a staged
// checkout selection pointing at a saved address.
func seedCheckout(t *testing.T, db *gorm.DB, price float64, qty, stock int) fixture {
	t.Helper()

	user := models.User{
		Username: fmt.Sprintf("tester-%d", time.Now().UnixNano()),
		Email:    fmt.Sprintf("tester-%d@example.com", time.Now().UnixNano()),
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{
		Name:          "Adult Dog Food",
		PetType:       "Dog",
		Category:      "Food",
		Price:         price,
		StockQuantity: stock,
		InStock:       true,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)

	address := models.Address{
		UserID:  user.ID,
		Name:    "Test Person",
		Phone:   "9999999999",
		Street:  "42 Petfield Road",
		City:    "Bangalore",
		State:   "Karnataka",
		Pincode: "560001",
	}
	require.NoError(t, db.Create(&address).Error)

	item := models.CartItem{
		UserID:     user.ID,
		ProductID:  product.ID,
		Quantity:   qty,
		PriceAtAdd: price,
	}
	require.NoError(t, db.Create(&item).Error)

	selection := models.CheckoutSelection{
		UserID:         user.ID,
		AddressID:      &address.ID,
		DeliveryOption: "standard",
		PaymentMethod:  "cod",
	}
	require.NoError(t, db.Create(&selection).Error)

	return fixture{user: user, product: product, address: address, selection: selection}
}

func placeInTx(t *testing.T, db *gorm.DB, user *models.User) (*models.Order, error) {
	t.Helper()
	tx := db.Begin()
	require.NoError(t, tx.Error)
	order, err := placeOrderTx(tx, user)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	require.NoError(t, tx.Commit().Error)
	return order, nil
}

func TestPlaceOrderBelowFreeShippingThreshold(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 2, 10)

	order, err := placeInTx(t, db, &f.user)
	require.NoError(t, err)

	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 50.0, order.ShippingFee)
	assert.Equal(t, 250.0, order.Total)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].Price)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)
	assert.True(t, product.InStock)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	assert.Zero(t, cartCount)

	var user models.User
	require.NoError(t, db.First(&user, f.user.ID).Error)
	assert.Equal(t, 1, user.TotalOrders)

	// shipping snapshot copied, not referenced
	assert.Equal(t, f.address.Street, order.Shipping.Street)
	assert.Equal(t, f.address.Pincode, order.Shipping.Pincode)
}

func TestPlaceOrderFreeShippingAtThreshold(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 250, 2, 10)

	order, err := placeInTx(t, db, &f.user)
	require.NoError(t, err)

	assert.Equal(t, 500.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingFee)
	assert.Equal(t, 500.0, order.Total)
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 5, 3)

	_, err := placeInTx(t, db, &f.user)
	var stockErr *models.OutOfStockError
	require.ErrorAs(t, err, &stockErr)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 3, product.StockQuantity)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	assert.Equal(t, int64(1), cartCount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "empty", Email: "empty@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	_, err := placeInTx(t, db, &user)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderMissingSelectionAndAddress(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 1, 5)

	require.NoError(t, db.Delete(&models.CheckoutSelection{}, f.selection.ID).Error)
	_, err := placeInTx(t, db, &f.user)
	assert.ErrorIs(t, err, ErrNoCheckoutSelection)

	selection := models.CheckoutSelection{UserID: f.user.ID, DeliveryOption: "standard", PaymentMethod: "cod"}
	require.NoError(t, db.Create(&selection).Error)
	_, err = placeInTx(t, db, &f.user)
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestCouponRedeemedOnceAcrossOrders(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 150, 2, 20)

	coupon := models.Coupon{
		Code:         "SAVE10",
		DiscountType: models.DiscountTypePercentage,
		Value:        10,
		Active:       true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	// discount applied into the staged totals, the way the apply endpoint
	// does it: subtotal 300, fee 50, 10% off
	subtotal, fee, total := 300.0, 50.0, 320.0
	require.NoError(t, db.Model(&models.CheckoutSelection{}).
		Where("id = ?", f.selection.ID).
		Updates(map[string]interface{}{
			"coupon_code": "SAVE10", "subtotal": subtotal, "shipping_fee": fee, "total": total,
		}).Error)

	order, err := placeInTx(t, db, &f.user)
	require.NoError(t, err)
	assert.Equal(t, 320.0, order.Total)

	var redemptions int64
	db.Model(&models.CouponRedemption{}).
		Where("coupon_id = ? AND user_id = ?", coupon.ID, f.user.ID).
		Count(&redemptions)
	assert.Equal(t, int64(1), redemptions)

	// second order with the same code: the unique index makes the insert
	// the authoritative already-used signal, and the placement rolls back
	item := models.CartItem{UserID: f.user.ID, ProductID: f.product.ID, Quantity: 1, PriceAtAdd: 150}
	require.NoError(t, db.Create(&item).Error)

	_, err = placeInTx(t, db, &f.user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponAlreadyRedeemed))

	db.Model(&models.CouponRedemption{}).
		Where("coupon_id = ? AND user_id = ?", coupon.ID, f.user.ID).
		Count(&redemptions)
	assert.Equal(t, int64(1), redemptions)
}

func TestOnlineOrderRequiresSubtotal(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 1, 5)

	tx := db.Begin()
	_, err := placeOrderForOnlinePaymentTx(tx, &f.user)
	tx.Rollback()
	assert.ErrorIs(t, err, ErrMissingSubtotal)
}

func TestOnlineOrderWithEmptyCartUsesSelectionTotals(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 2, 10)

	require.NoError(t, db.Where("user_id = ?", f.user.ID).Delete(&models.CartItem{}).Error)
	require.NoError(t, db.Model(&models.CheckoutSelection{}).
		Where("id = ?", f.selection.ID).
		Updates(map[string]interface{}{"subtotal": 200.0, "shipping_fee": 50.0, "total": 250.0}).Error)

	tx := db.Begin()
	order, err := placeOrderForOnlinePaymentTx(tx, &f.user)
	require.NoError(t, err)
	require.NoError(t, tx.Commit().Error)

	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 250.0, order.Total)
	assert.Empty(t, order.Items)
	assert.Equal(t, "online", order.PaymentMethod)
}

func TestOnlineOrderWithCartMirrorsCashPath(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db, 100, 2, 10)

	require.NoError(t, db.Model(&models.CheckoutSelection{}).
		Where("id = ?", f.selection.ID).
		Updates(map[string]interface{}{"subtotal": 200.0, "shipping_fee": 50.0, "total": 250.0}).Error)

	tx := db.Begin()
	order, err := placeOrderForOnlinePaymentTx(tx, &f.user)
	require.NoError(t, err)
	require.NoError(t, tx.Commit().Error)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	assert.Zero(t, cartCount)
}
