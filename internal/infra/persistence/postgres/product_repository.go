// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// productUpdateColumns is the explicit column list for product updates so zero
// values (price 0, has_variants false) are written instead of skipped.
var productUpdateColumns = []string{"name", "description", "price", "stock", "has_variants", "images", "updated_at"}

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a product with its variants and category references.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	categoryIDs, err := repo.categoryIDsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return toProductDomain(&productM, categoryIDs), nil
}

// FindVariant retrieves a single variant of a product.
func (repo *productRepository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*entity.Variant, error) {
	var variantM model.VariantModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVariantNotFound
		}

		return nil, errors.Wrap(err, "failed to find variant")
	}

	variant := toVariantDomain(&variantM)

	return &variant, nil
}

// List retrieves all products with their variants, newest first. Listing is
// the read-heavy storefront path, so it is routed to replicas when configured.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Preload("Variants").
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	refs, err := repo.categoryRefs(ctx, productModels)
	if err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM, refs[productM.ID]))
	}

	return products, nil
}

// Create persists a new product, including any variants and category references.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	if err := repo.replaceCategoryRefs(ctx, productM.ID, product.CategoryIDs); err != nil {
		return err
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt
	for i := range productM.Variants {
		product.Variants[i].ID = productM.Variants[i].ID
		product.Variants[i].ProductID = productM.ID
	}

	return nil
}

// Update modifies a product's own columns and replaces its category references.
// Variants are managed through the dedicated variant methods.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select(productUpdateColumns).
		Updates(productM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return repo.replaceCategoryRefs(ctx, product.ID, product.CategoryIDs)
}

// Delete removes a product together with its variants and category references.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&model.VariantModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product variants")
	}

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&model.ProductCategoryModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product category references")
	}

	return nil
}

// CreateVariant appends a variant to a product.
func (repo *productRepository) CreateVariant(ctx context.Context, variant *entity.Variant) error {
	variantM := fromVariantDomain(variant)

	if err := repo.db.WithContext(ctx).Create(variantM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create variant")
	}

	// Update the entity with generated values
	variant.ID = variantM.ID

	return nil
}

// UpdateVariant modifies an existing variant.
func (repo *productRepository) UpdateVariant(ctx context.Context, variant *entity.Variant) error {
	variantM := fromVariantDomain(variant)

	result := repo.db.WithContext(ctx).
		Model(&model.VariantModel{}).
		Where("id = ? AND product_id = ?", variant.ID, variant.ProductID).
		Select("sku", "attributes", "price", "stock", "images", "updated_at").
		Updates(variantM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update variant")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVariantNotFound
	}

	return nil
}

// DeleteVariant removes a variant from a product.
func (repo *productRepository) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&model.VariantModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete variant")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVariantNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from the flat or variant stock.
// The WHERE clause enforces the remaining-stock bound in the same statement,
// so two concurrent checkouts can never both take the last unit. A missed
// write is read back to tell a vanished product or variant apart from a
// genuine stock shortfall.
func (repo *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int64) error {
	var result *gorm.DB
	if variantID == nil {
		result = repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ? AND has_variants = ? AND stock >= ?", productID, false, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	} else {
		result = repo.db.WithContext(ctx).
			Model(&model.VariantModel{}).
			Where("id = ? AND product_id = ? AND stock >= ?", *variantID, productID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	}

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repo.classifyMissedDecrement(ctx, productID, variantID)
	}

	return nil
}

// classifyMissedDecrement distinguishes an absent product or variant from a
// stock shortfall after a zero-row conditional decrement.
func (repo *productRepository) classifyMissedDecrement(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error {
	var count int64
	var query *gorm.DB
	if variantID == nil {
		query = repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", productID)
	} else {
		query = repo.db.WithContext(ctx).
			Model(&model.VariantModel{}).
			Where("id = ? AND product_id = ?", *variantID, productID)
	}
	if err := query.Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check stock row existence")
	}
	if count == 0 {
		if variantID == nil {
			return repository.ErrProductNotFound
		}

		return repository.ErrVariantNotFound
	}

	return repository.ErrInsufficientStock
}

// categoryIDsFor loads the category references of a single product.
func (repo *productRepository) categoryIDsFor(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var categoryIDs []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductCategoryModel{}).
		Where("product_id = ?", productID).
		Pluck("category_id", &categoryIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load product category references")
	}

	return categoryIDs, nil
}

// categoryRefs loads category references for a batch of products in one query.
func (repo *productRepository) categoryRefs(ctx context.Context, productModels []*model.ProductModel) (map[uuid.UUID][]uuid.UUID, error) {
	if len(productModels) == 0 {
		return nil, nil
	}

	productIDs := make([]uuid.UUID, 0, len(productModels))
	for _, productM := range productModels {
		productIDs = append(productIDs, productM.ID)
	}

	var joinRows []model.ProductCategoryModel
	if err := repo.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&joinRows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load product category references")
	}

	refs := make(map[uuid.UUID][]uuid.UUID, len(productModels))
	for _, row := range joinRows {
		refs[row.ProductID] = append(refs[row.ProductID], row.CategoryID)
	}

	return refs, nil
}

// replaceCategoryRefs swaps the product's join rows for the given category set.
func (repo *productRepository) replaceCategoryRefs(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductCategoryModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear product category references")
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	joinRows := make([]model.ProductCategoryModel, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		joinRows = append(joinRows, model.ProductCategoryModel{
			ProductID:  productID,
			CategoryID: categoryID,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&joinRows).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidCategoryRefs
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store product category references")
	}

	return nil
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel, categoryIDs []uuid.UUID) *entity.Product {
	if data == nil {
		return nil
	}

	variants := make([]entity.Variant, 0, len(data.Variants))
	for i := range data.Variants {
		variants = append(variants, toVariantDomain(&data.Variants[i]))
	}
	if len(variants) == 0 {
		variants = nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CategoryIDs: categoryIDs,
		Price:       data.Price,
		Stock:       data.Stock,
		HasVariants: data.HasVariants,
		Variants:    variants,
		Images:      data.Images,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	variants := make([]model.VariantModel, 0, len(data.Variants))
	for i := range data.Variants {
		variants = append(variants, *fromVariantDomain(&data.Variants[i]))
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
		HasVariants: data.HasVariants,
		Images:      model.StringsColumn(data.Images),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		Variants:    variants,
	}
}

// toVariantDomain converts a GORM VariantModel to a domain Variant entity.
func toVariantDomain(data *model.VariantModel) entity.Variant {
	return entity.Variant{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SKU:        data.SKU,
		Attributes: entity.Attributes(data.Attributes),
		Price:      data.Price,
		Stock:      data.Stock,
		Images:     data.Images,
	}
}

// fromVariantDomain converts a domain Variant entity to a GORM VariantModel.
func fromVariantDomain(data *entity.Variant) *model.VariantModel {
	return &model.VariantModel{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SKU:        data.SKU,
		Attributes: model.AttributesColumn(data.Attributes),
		Price:      data.Price,
		Stock:      data.Stock,
		Images:     model.StringsColumn(data.Images),
	}
}
