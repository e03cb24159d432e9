package controllers

import (
	"errors"
	"strings"

	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
	"gorm.io/gorm"
)

// Errors surfaced by order assembly. Handlers map these onto 4xx responses;
// any of them aborts the surrounding transaction so no stock decrement,
// order row or coupon redemption survives a failed placement.
var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrNoCheckoutSelection   = errors.New("no checkout selection found")
	ErrNoAddress             = errors.New("no delivery address selected")
	ErrMissingSubtotal       = errors.New("checkout selection has no subtotal")
	ErrCouponAlreadyRedeemed = errors.New("coupon has already been used")
)

// placeOrderTx turns the user's cart plus checkout selection into a durable
// order. It runs entirely inside the caller's transaction; the caller owns
// Begin/Rollback/Commit. Stock for every cart line is validated before any
// mutation so a multi-line order either fully succeeds or fully fails.
func placeOrderTx(tx *gorm.DB, user *models.User) (*models.Order, error) {
	var items []models.CartItem
	if err := tx.Preload("Product").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := loadAndCheckStock(tx, items)
	if err != nil {
		return nil, err
	}

	selection, err := loadSelection(tx, user.ID)
	if err != nil {
		return nil, err
	}
	address, err := loadAddress(tx, selection)
	if err != nil {
		return nil, err
	}

	// Subtotal comes from the frozen per-line prices, never the live
	// product price. Shipping and total prefer the selection's stored
	// values (they already carry any coupon discount).
	var subtotal float64
	for _, item := range items {
		subtotal += item.PriceAtAdd * float64(item.Quantity)
	}
	shippingFee := utils.ShippingFee(subtotal)
	if selection.ShippingFee != nil {
		shippingFee = *selection.ShippingFee
	}
	total := subtotal + shippingFee
	if selection.Total != nil {
		total = *selection.Total
	}

	order := &models.Order{
		UserID:         user.ID,
		DeliveryOption: selection.DeliveryOption,
		PaymentMethod:  selection.PaymentMethod,
		Shipping:       snapshotAddress(address),
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		Total:          total,
		Status:         models.OrderStatusPlaced,
		PaymentStatus:  models.PaymentStatusPending,
		Items:          assembleOrderItems(items, products),
	}

	if err := decrementStock(tx, items, products); err != nil {
		return nil, err
	}
	if err := tx.Create(order).Error; err != nil {
		utils.LogError("Failed to create order for user %d: %v", user.ID, err)
		return nil, err
	}
	if err := finalizePlacement(tx, user, selection); err != nil {
		return nil, err
	}

	utils.LogInfo("Order %d placed for user %d: subtotal=%.2f total=%.2f items=%d",
		order.ID, user.ID, subtotal, total, len(order.Items))
	return order, nil
}

// placeOrderForOnlinePaymentTx assembles an order after a verified gateway
// payment. Unlike the cash path it does not require cart lines to still
// exist (verification can race a cart clear); totals are read from the
// checkout selection, whose subtotal is mandatory.
func placeOrderForOnlinePaymentTx(tx *gorm.DB, user *models.User) (*models.Order, error) {
	selection, err := loadSelection(tx, user.ID)
	if err != nil {
		return nil, err
	}
	if selection.Subtotal == nil {
		return nil, ErrMissingSubtotal
	}
	address, err := loadAddress(tx, selection)
	if err != nil {
		return nil, err
	}

	subtotal := *selection.Subtotal
	shippingFee := utils.ShippingFee(subtotal)
	if selection.ShippingFee != nil {
		shippingFee = *selection.ShippingFee
	}
	total := subtotal + shippingFee
	if selection.Total != nil {
		total = *selection.Total
	}

	var items []models.CartItem
	if err := tx.Preload("Product").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	var orderItems []models.OrderItem
	if len(items) > 0 {
		products, err := loadAndCheckStock(tx, items)
		if err != nil {
			return nil, err
		}
		orderItems = assembleOrderItems(items, products)
		if err := decrementStock(tx, items, products); err != nil {
			return nil, err
		}
	} else {
		utils.LogInfo("Online order for user %d assembled with no cart lines", user.ID)
	}

	order := &models.Order{
		UserID:         user.ID,
		DeliveryOption: selection.DeliveryOption,
		PaymentMethod:  utils.PaymentMethodOnline,
		Shipping:       snapshotAddress(address),
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		Total:          total,
		Status:         models.OrderStatusPlaced,
		PaymentStatus:  models.PaymentStatusPending,
		Items:          orderItems,
	}
	if err := tx.Create(order).Error; err != nil {
		utils.LogError("Failed to create online order for user %d: %v", user.ID, err)
		return nil, err
	}
	if err := finalizePlacement(tx, user, selection); err != nil {
		return nil, err
	}

	utils.LogInfo("Online order %d placed for user %d: total=%.2f items=%d",
		order.ID, user.ID, total, len(orderItems))
	return order, nil
}

// loadAndCheckStock fetches a fresh product row per distinct product in the
// cart and validates every line against it before anything is mutated.
func loadAndCheckStock(tx *gorm.DB, items []models.CartItem) (map[uint]*models.Product, error) {
	products := make(map[uint]*models.Product)
	for _, item := range items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			return nil, err
		}
		products[item.ProductID] = &product
	}
	for _, item := range items {
		if err := products[item.ProductID].CheckAvailable(item.VariantID, item.Quantity); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func loadSelection(tx *gorm.DB, userID uint) (*models.CheckoutSelection, error) {
	var selection models.CheckoutSelection
	if err := tx.Where("user_id = ?", userID).First(&selection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCheckoutSelection
		}
		return nil, err
	}
	return &selection, nil
}

func loadAddress(tx *gorm.DB, selection *models.CheckoutSelection) (*models.Address, error) {
	if selection.AddressID == nil {
		return nil, ErrNoAddress
	}
	var address models.Address
	if err := tx.First(&address, *selection.AddressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAddress
		}
		return nil, err
	}
	return &address, nil
}

// snapshotAddress copies the address into the order so later edits or
// deletions never rewrite shipping history.
func snapshotAddress(address *models.Address) models.ShippingSnapshot {
	return models.ShippingSnapshot{
		Name:        address.Name,
		Phone:       address.Phone,
		Street:      address.Street,
		City:        address.City,
		State:       address.State,
		Pincode:     address.Pincode,
		Landmark:    address.Landmark,
		AddressType: address.AddressType,
	}
}

// assembleOrderItems freezes each cart line into an order item, deriving a
// display label from the fresh product row when the cart's stored label is
// empty.
func assembleOrderItems(items []models.CartItem, products map[uint]*models.Product) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		label := item.VariantLabel
		if label == "" {
			label = products[item.ProductID].DeriveVariantLabel(item.VariantID)
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			VariantLabel: label,
			Quantity:     item.Quantity,
			Price:        item.PriceAtAdd,
		})
	}
	return orderItems
}

// decrementStock applies each line's quantity to its product (variant-aware)
// and saves the full row so the variants collection persists as one unit.
func decrementStock(tx *gorm.DB, items []models.CartItem, products map[uint]*models.Product) error {
	for _, item := range items {
		products[item.ProductID].DecrementStock(item.VariantID, item.Quantity)
	}
	for _, product := range products {
		if err := tx.Save(product).Error; err != nil {
			utils.LogError("Failed to persist stock for product %d: %v", product.ID, err)
			return err
		}
	}
	return nil
}

// finalizePlacement clears the cart, bumps the user's lifetime order count
// and records the coupon redemption if the selection carries a code. The
// composite unique index on (coupon_id, user_id) makes the insert itself the
// authority on reuse: a duplicate-key failure aborts the placement.
func finalizePlacement(tx *gorm.DB, user *models.User, selection *models.CheckoutSelection) error {
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("total_orders", gorm.Expr("total_orders + 1")).Error; err != nil {
		return err
	}

	if selection.CouponCode == "" {
		return nil
	}
	var coupon models.Coupon
	if err := tx.Where("LOWER(code) = LOWER(?)", selection.CouponCode).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A stale code on the selection does not block the order;
			// the discount was already folded into the stored total.
			utils.LogError("Selection coupon %q no longer exists for user %d", selection.CouponCode, user.ID)
			return nil
		}
		return err
	}
	redemption := models.CouponRedemption{CouponID: coupon.ID, UserID: user.ID}
	if err := tx.Create(&redemption).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrCouponAlreadyRedeemed
		}
		return err
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
