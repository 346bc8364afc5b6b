package model

import (
	"database/sql/driver"
	"encoding/json"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// jsonbValue marshals v into a driver.Value suitable for a jsonb column.
func jsonbValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal jsonb column")
	}

	return data, nil
}

// jsonbScan unmarshals a jsonb column value into dest. NULL leaves dest zeroed.
func jsonbScan(src any, dest any) error {
	if src == nil {
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported jsonb source type %T", src)
	}

	if len(data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(data, dest), "failed to unmarshal jsonb column")
}

// AttributesColumn stores a variant's normalized attribute set as jsonb.
type AttributesColumn entity.Attributes

// Value implements driver.Valuer.
func (c AttributesColumn) Value() (driver.Value, error) {
	return jsonbValue(entity.Attributes(c))
}

// Scan implements sql.Scanner.
func (c *AttributesColumn) Scan(src any) error {
	return jsonbScan(src, (*entity.Attributes)(c))
}

// GormDataType tells GORM which column type to use in migrations.
func (AttributesColumn) GormDataType() string {
	return "jsonb"
}

// StringsColumn stores a list of opaque strings (image URLs) as jsonb.
type StringsColumn []string

// Value implements driver.Valuer.
func (c StringsColumn) Value() (driver.Value, error) {
	return jsonbValue([]string(c))
}

// Scan implements sql.Scanner.
func (c *StringsColumn) Scan(src any) error {
	return jsonbScan(src, (*[]string)(c))
}

// GormDataType tells GORM which column type to use in migrations.
func (StringsColumn) GormDataType() string {
	return "jsonb"
}

// AddressColumn stores a delivery address as jsonb.
type AddressColumn entity.Address

// Value implements driver.Valuer.
func (c AddressColumn) Value() (driver.Value, error) {
	return jsonbValue(entity.Address(c))
}

// Scan implements sql.Scanner.
func (c *AddressColumn) Scan(src any) error {
	return jsonbScan(src, (*entity.Address)(c))
}

// GormDataType tells GORM which column type to use in migrations.
func (AddressColumn) GormDataType() string {
	return "jsonb"
}

// cartLineJSON is the wire shape of one cart line inside the jsonb column.
type cartLineJSON struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int64   `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
	LineTotal int64   `json:"line_total"`
}

// CartLinesColumn stores the full cart line set as a single jsonb document.
// The cart is always read and written whole, so per-line rows buy nothing.
type CartLinesColumn []entity.CartLine

// Value implements driver.Valuer.
func (c CartLinesColumn) Value() (driver.Value, error) {
	lines := make([]cartLineJSON, 0, len(c))
	for i := range c {
		lines = append(lines, cartLineJSON{
			ProductID: c[i].ProductID.String(),
			VariantID: uuidPtrToString(c[i].VariantID),
			Quantity:  c[i].Quantity,
			UnitPrice: c[i].UnitPrice,
			LineTotal: c[i].LineTotal,
		})
	}

	return jsonbValue(lines)
}

// Scan implements sql.Scanner.
func (c *CartLinesColumn) Scan(src any) error {
	var lines []cartLineJSON
	if err := jsonbScan(src, &lines); err != nil {
		return err
	}

	result := make([]entity.CartLine, 0, len(lines))
	for i := range lines {
		productID, err := parseUUIDString(lines[i].ProductID)
		if err != nil {
			return err
		}
		variantID, err := parseUUIDStringPtr(lines[i].VariantID)
		if err != nil {
			return err
		}
		result = append(result, entity.CartLine{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  lines[i].Quantity,
			UnitPrice: lines[i].UnitPrice,
			LineTotal: lines[i].LineTotal,
		})
	}
	*c = result

	return nil
}

// GormDataType tells GORM which column type to use in migrations.
func (CartLinesColumn) GormDataType() string {
	return "jsonb"
}

// orderLineJSON is the wire shape of one frozen order line inside the jsonb column.
type orderLineJSON struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	VariantID   *string           `json:"variant_id,omitempty"`
	Attributes  entity.Attributes `json:"attributes,omitempty"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   int64             `json:"unit_price"`
	LineTotal   int64             `json:"line_total"`
}

// OrderLinesColumn stores an order's frozen line set as a single jsonb
// document. Order lines never change after checkout, which makes a document
// column a better fit than rows that would otherwise need referential upkeep.
type OrderLinesColumn []entity.OrderLine

// Value implements driver.Valuer.
func (c OrderLinesColumn) Value() (driver.Value, error) {
	lines := make([]orderLineJSON, 0, len(c))
	for i := range c {
		lines = append(lines, orderLineJSON{
			ProductID:   c[i].ProductID.String(),
			ProductName: c[i].ProductName,
			VariantID:   uuidPtrToString(c[i].VariantID),
			Attributes:  c[i].Attributes,
			Quantity:    c[i].Quantity,
			UnitPrice:   c[i].UnitPrice,
			LineTotal:   c[i].LineTotal,
		})
	}

	return jsonbValue(lines)
}

// Scan implements sql.Scanner.
func (c *OrderLinesColumn) Scan(src any) error {
	var lines []orderLineJSON
	if err := jsonbScan(src, &lines); err != nil {
		return err
	}

	result := make([]entity.OrderLine, 0, len(lines))
	for i := range lines {
		productID, err := parseUUIDString(lines[i].ProductID)
		if err != nil {
			return err
		}
		variantID, err := parseUUIDStringPtr(lines[i].VariantID)
		if err != nil {
			return err
		}
		result = append(result, entity.OrderLine{
			ProductID:   productID,
			ProductName: lines[i].ProductName,
			VariantID:   variantID,
			Attributes:  lines[i].Attributes,
			Quantity:    lines[i].Quantity,
			UnitPrice:   lines[i].UnitPrice,
			LineTotal:   lines[i].LineTotal,
		})
	}
	*c = result

	return nil
}

// GormDataType tells GORM which column type to use in migrations.
func (OrderLinesColumn) GormDataType() string {
	return "jsonb"
}
