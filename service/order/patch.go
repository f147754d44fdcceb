package order

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	salesEntity "shopcore.GO/model/entity/sales"
)

// ItemInput is the desired state of one order line. VariantID 0 means
// no variant. ProductName and VariantAttributes are the snapshot
// written to the row.
type ItemInput struct {
	ProductID         uint                   `mapstructure:"product_id"`
	VariantID         uint                   `mapstructure:"variant_id"`
	Quantity          int                    `mapstructure:"quantity"`
	UnitPrice         float64                `mapstructure:"unit_price"`
	ProductName       string                 `mapstructure:"product_name"`
	VariantAttributes map[string]interface{} `mapstructure:"variant_attributes"`
}

// Patch is a sparse field patch over one or many orders. Nil fields
// are left untouched. Items carries the full desired line-item set;
// nil leaves the items alone, an empty slice removes them all.
type Patch struct {
	Status         *string  `mapstructure:"status"`
	PaymentStatus  *string  `mapstructure:"payment_status"`
	DeliveryOption *string  `mapstructure:"delivery_option"`
	PaymentMethod  *string  `mapstructure:"payment_method"`
	Subtotal       *float64 `mapstructure:"subtotal"`
	Tax            *float64 `mapstructure:"tax"`
	ShippingFee    *float64 `mapstructure:"shipping_fee"`
	Discount       *float64 `mapstructure:"discount"`
	Total          *float64 `mapstructure:"total"`
	CustomerID     *string  `mapstructure:"customer_id"`
	CustomerName   *string  `mapstructure:"customer_name"`
	Notes          *string  `mapstructure:"notes"`

	Items *[]ItemInput `mapstructure:"items"`
}

// DecodePatch builds a Patch from a decoded JSON body. Field presence
// in the map decides what gets patched, so the API layer binds into a
// map first and decodes here. Unknown fields are rejected.
func DecodePatch(body map[string]interface{}) (*Patch, error) {
	var p Patch
	cfg := &mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(body); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("bad patch: %v", err)}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Patch) validate() error {
	if p.Status != nil && !salesEntity.ValidStatus(*p.Status) {
		return &ValidationError{Reason: fmt.Sprintf("unknown status %q", *p.Status)}
	}
	if p.PaymentStatus != nil && !salesEntity.ValidPaymentStatus(*p.PaymentStatus) {
		return &ValidationError{Reason: fmt.Sprintf("unknown payment_status %q", *p.PaymentStatus)}
	}
	if p.Items != nil {
		seen := make(map[[2]uint]bool, len(*p.Items))
		for i, it := range *p.Items {
			if it.ProductID == 0 {
				return &ValidationError{Reason: fmt.Sprintf("items[%d]: product_id is required", i)}
			}
			if it.Quantity <= 0 {
				return &ValidationError{Reason: fmt.Sprintf("items[%d]: quantity must be positive", i)}
			}
			key := [2]uint{it.ProductID, it.VariantID}
			if seen[key] {
				return &ValidationError{Reason: fmt.Sprintf(
					"items[%d]: duplicate line for product %d variant %d", i, it.ProductID, it.VariantID)}
			}
			seen[key] = true
		}
	}
	return nil
}

// orderFields returns the set order-level columns as an update map.
// Items are not a column and are handled by the reconciler.
func (p *Patch) orderFields() map[string]interface{} {
	fields := make(map[string]interface{})
	set := func(col string, v interface{}) { fields[col] = v }
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.PaymentStatus != nil {
		set("payment_status", *p.PaymentStatus)
	}
	if p.DeliveryOption != nil {
		set("delivery_option", *p.DeliveryOption)
	}
	if p.PaymentMethod != nil {
		set("payment_method", *p.PaymentMethod)
	}
	if p.Subtotal != nil {
		set("subtotal", *p.Subtotal)
	}
	if p.Tax != nil {
		set("tax", *p.Tax)
	}
	if p.ShippingFee != nil {
		set("shipping_fee", *p.ShippingFee)
	}
	if p.Discount != nil {
		set("discount", *p.Discount)
	}
	if p.Total != nil {
		set("total", *p.Total)
	}
	if p.CustomerID != nil {
		set("customer_id", *p.CustomerID)
	}
	if p.CustomerName != nil {
		set("customer_name", *p.CustomerName)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	return fields
}

// HasOrderFields reports whether the patch touches any order column.
func (p *Patch) HasOrderFields() bool {
	return len(p.orderFields()) > 0
}
