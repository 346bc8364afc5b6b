package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Flat price and stock are only
// meaningful while has_variants is false; the application zeroes them when
// switching to variant pricing.
type ProductModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:text"`
	Price       int64         `gorm:"not null;default:0"`
	Stock       int64         `gorm:"not null;default:0"`
	HasVariants bool          `gorm:"not null;default:false"`
	Images      StringsColumn `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []VariantModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// VariantModel mirrors the 'variants' table. The application guarantees
// attribute-set uniqueness within a product before writing, so the table
// carries no expression index over the jsonb column.
type VariantModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	SKU        string           `gorm:"column:sku;type:varchar(100)"`
	Attributes AttributesColumn `gorm:"type:jsonb;not null"`
	Price      int64            `gorm:"not null"`
	Stock      int64            `gorm:"not null;default:0"`
	Images     StringsColumn    `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (VariantModel) TableName() string {
	return "variants"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductCategoryModel mirrors the 'product_categories' join table. Rows are
// managed explicitly by the product repository; deleting a category leaves its
// join rows dangling and reads tolerate that.
type ProductCategoryModel struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}
