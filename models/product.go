package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidQuantity is returned when a requested quantity is zero or negative.
var ErrInvalidQuantity = fmt.Errorf("quantity must be at least 1")

// OutOfStockError reports that a product (or one of its variants) cannot
// cover the requested quantity. Detail carries the stock info the storefront
// shows next to the product name.
type OutOfStockError struct {
	ProductName string
	Detail      string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s (%s)", e.ProductName, e.Detail)
}

// ProductVariant is a sellable option of a product, e.g. a "500g" pack.
// Stock and price are normalized to proper numeric types when the variants
// column is decoded; string-encoded numbers are accepted, anything else is
// rejected at the store boundary.
type ProductVariant struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	Weight     string  `json:"weight,omitempty"`
	Size       string  `json:"size,omitempty"`
	WeightUnit string  `json:"weightUnit,omitempty"`
	SizeUnit   string  `json:"sizeUnit,omitempty"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
}

// UnmarshalJSON accepts legacy payloads where stock and price arrive either
// as numbers or as numeric strings. Malformed values fail the decode instead
// of defaulting to zero.
func (v *ProductVariant) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID         string          `json:"id"`
		Label      string          `json:"label"`
		Weight     string          `json:"weight"`
		Size       string          `json:"size"`
		WeightUnit string          `json:"weightUnit"`
		SizeUnit   string          `json:"sizeUnit"`
		Price      json.RawMessage `json:"price"`
		Stock      json.RawMessage `json:"stock"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	v.ID = a.ID
	v.Label = a.Label
	v.Weight = a.Weight
	v.Size = a.Size
	v.WeightUnit = a.WeightUnit
	v.SizeUnit = a.SizeUnit

	var err error
	if v.Price, err = decodeNumeric(a.Price); err != nil {
		return fmt.Errorf("variant %q: bad price: %v", a.ID, err)
	}
	stock, err := decodeNumeric(a.Stock)
	if err != nil {
		return fmt.Errorf("variant %q: bad stock: %v", a.ID, err)
	}
	v.Stock = int(stock)
	return nil
}

// decodeNumeric parses a JSON number or a string holding one. A missing
// field decodes to zero; a non-numeric value is an error.
func decodeNumeric(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("value %s is neither number nor string", string(raw))
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("string value %q is not numeric", s)
	}
	return n, nil
}

// Product represents an item in the pet store catalog. Products either carry
// a single stock counter or a list of variants with per-variant stock.
type Product struct {
	gorm.Model
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Brand            string           `json:"brand"`
	PetType          string           `json:"pet_type"` // Dog, Cat, Pharmacy, Outlet
	Category         string           `json:"category"`
	Subcategory      string           `json:"subcategory"`
	SubcategoryLabel string           `json:"subcategory_label"`
	Price            float64          `json:"price"`
	Weight           string           `json:"weight"`
	WeightUnit       string           `json:"weight_unit"`
	ImageURL         string           `json:"image_url"`
	StockQuantity    int              `json:"stock_quantity"`
	InStock          bool             `json:"in_stock" gorm:"default:true"`
	HasVariants      bool             `json:"has_variants" gorm:"default:false"`
	Variants         []ProductVariant `json:"variants" gorm:"serializer:json"`
	IsActive         bool             `json:"is_active" gorm:"default:true"`
}

// VariantByID returns a pointer into the variants slice, or nil.
func (p *Product) VariantByID(variantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// CheckAvailable reports whether the requested quantity can be sold. For
// variant purchases the variant's own stock decides; otherwise the product
// counter does. An explicit InStock=false always wins over a positive
// counter, so manually disabled products stay unsellable.
func (p *Product) CheckAvailable(variantID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if variantID != "" && p.HasVariants {
		v := p.VariantByID(variantID)
		if v == nil {
			return &OutOfStockError{ProductName: p.Name, Detail: "variant not found"}
		}
		if v.Stock < quantity {
			return &OutOfStockError{ProductName: p.Name, Detail: fmt.Sprintf("variant stock: %d", v.Stock)}
		}
		return nil
	}
	if !p.InStock {
		return &OutOfStockError{ProductName: p.Name, Detail: "marked as out of stock"}
	}
	if p.StockQuantity < quantity {
		return &OutOfStockError{ProductName: p.Name, Detail: fmt.Sprintf("main stock: %d", p.StockQuantity)}
	}
	return nil
}

// DecrementStock subtracts quantity from the relevant counter, flooring at
// zero. The non-variant path also refreshes the InStock flag so it keeps
// tracking StockQuantity > 0. The caller persists the product afterwards.
func (p *Product) DecrementStock(variantID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if variantID != "" && p.HasVariants {
		if v := p.VariantByID(variantID); v != nil {
			v.Stock -= quantity
			if v.Stock < 0 {
				v.Stock = 0
			}
		}
		return
	}
	p.StockQuantity -= quantity
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	p.InStock = p.StockQuantity > 0
}

var (
	digitRe      = regexp.MustCompile(`\d`)
	unitTokenRe  = regexp.MustCompile(`\b(g|kg|ml|l|lit|ltr|cm|in|ft)\b`)
	denyLabelRe  = regexp.MustCompile(`(category|care|antibiotic|antibiotics|oral|medicine|medical)`)
	labelMaxLen  = 40
	labelMaxWord = 3
)

// DeriveVariantLabel builds a short human-readable label for a variant so
// order items display "500g" instead of an internal variant id. Preference
// order: variant label, weight, size, then the product's own weight, then a
// numeric-looking subcategory label. Freeform category-like text is dropped.
func (p *Product) DeriveVariantLabel(variantID string) string {
	var label string
	if variantID != "" && p.HasVariants {
		if v := p.VariantByID(variantID); v != nil {
			label = strings.TrimSpace(v.Label)
			if label == "" {
				label = strings.TrimSpace(v.Weight)
			}
			if label == "" {
				label = strings.TrimSpace(v.Size)
			}
			if label != "" {
				unit := strings.TrimSpace(v.WeightUnit)
				if unit == "" {
					unit = strings.TrimSpace(v.SizeUnit)
				}
				if unit != "" && !strings.Contains(strings.ToLower(label), strings.ToLower(unit)) {
					label += unit
				}
			}
		}
	}

	if ok := acceptableLabel(label); ok {
		return label
	}

	if p.Weight != "" && digitRe.MatchString(p.Weight) {
		label = p.Weight
		if p.WeightUnit != "" && !strings.Contains(strings.ToLower(label), strings.ToLower(p.WeightUnit)) {
			label += p.WeightUnit
		}
		return label
	}

	if p.SubcategoryLabel != "" && digitRe.MatchString(p.SubcategoryLabel) {
		return p.SubcategoryLabel
	}

	return ""
}

// acceptableLabel keeps labels that look like a size or weight, plus short
// textual ones like "Medium" that don't read like category names.
func acceptableLabel(label string) bool {
	if label == "" {
		return false
	}
	low := strings.ToLower(label)
	if digitRe.MatchString(label) || unitTokenRe.MatchString(low) {
		return true
	}
	if denyLabelRe.MatchString(low) {
		return false
	}
	return len(strings.Fields(label)) <= labelMaxWord && len(label) <= labelMaxLen
}
