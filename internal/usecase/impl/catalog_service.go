package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

// ListProducts returns the whole catalog, newest first.
func (s *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns one product with its variants.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// validateCategoryRefs ensures every referenced category exists.
func (s *catalogService) validateCategoryRefs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	count, err := s.categoryRepo.CountByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to count categories")
	}
	if count != int64(len(ids)) {
		return domainerrors.ErrInvalidCategoryRefs
	}

	return nil
}

// CreateProduct creates a product. A flat-priced product must carry a
// positive price; a variant product starts with an empty variant list and
// gets variants attached afterwards.
func (s *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("商品名稱不可為空")
	}
	if !input.HasVariants && (input.Price <= 0 || input.Stock < 0) {
		return nil, domainerrors.ErrFlatPricingRequired
	}

	if err := s.validateCategoryRefs(ctx, input.CategoryIDs); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CategoryIDs: input.CategoryIDs,
		HasVariants: input.HasVariants,
		Images:      input.Images,
	}
	if !input.HasVariants {
		product.Price = input.Price
		product.Stock = input.Stock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct applies optional field updates. Price and stock updates are
// ignored while the product is in variant pricing mode; pricing lives on the
// variants then.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryIDs != nil {
		if err := s.validateCategoryRefs(ctx, input.CategoryIDs); err != nil {
			return nil, err
		}
		product.CategoryIDs = input.CategoryIDs
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if !product.HasVariants {
		if input.Price != nil {
			if *input.Price <= 0 {
				return nil, domainerrors.ErrFlatPricingRequired
			}
			product.Price = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				return nil, domainerrors.ErrFlatPricingRequired
			}
			product.Stock = *input.Stock
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product and its variants. Existing order lines keep
// their frozen copies.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// AddVariant attaches a variant to the product. The first variant switches
// the product from flat pricing to variant pricing; the mode switch and the
// variant insert commit together.
func (s *catalogService) AddVariant(ctx context.Context, productID uuid.UUID, input usecase.AddVariantInput) (*entity.Variant, error) {
	if !input.Attributes.IsWellFormed() {
		return nil, domainerrors.ErrInvalidAttributes
	}
	if input.Price <= 0 || input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("規格價格與庫存必須為正值")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	normalized := input.Attributes.Normalize()
	if product.HasDuplicateVariant(normalized, uuid.Nil) {
		return nil, domainerrors.ErrDuplicateAttributes
	}

	variant := &entity.Variant{
		ID:         uuid.New(),
		ProductID:  product.ID,
		SKU:        input.SKU,
		Attributes: normalized,
		Price:      input.Price,
		Stock:      input.Stock,
		Images:     input.Images,
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		txProductRepo := txRepoFactory.NewProductRepository()

		if !product.HasVariants {
			product.SwitchToVariantPricing()
			if err := txProductRepo.Update(ctx, product); err != nil {
				return errors.Wrap(err, "failed to switch pricing mode")
			}
		}

		if err := txProductRepo.CreateVariant(ctx, variant); err != nil {
			return errors.Wrap(err, "failed to create variant")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return variant, nil
}

// UpdateVariant updates a variant. Incoming attributes are merged into the
// existing set by key, then re-normalized and re-checked for uniqueness
// against the product's other variants.
func (s *catalogService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, input usecase.UpdateVariantInput) (*entity.Variant, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	variant := product.FindVariant(variantID)
	if variant == nil {
		return nil, domainerrors.ErrVariantNotFound
	}

	if input.Attributes != nil {
		if !input.Attributes.IsWellFormed() {
			return nil, domainerrors.ErrInvalidAttributes
		}

		merged := mergeAttributes(variant.Attributes, input.Attributes).Normalize()
		if product.HasDuplicateVariant(merged, variant.ID) {
			return nil, domainerrors.ErrDuplicateAttributes
		}
		variant.Attributes = merged
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("規格價格必須為正值")
		}
		variant.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("規格庫存不可為負值")
		}
		variant.Stock = *input.Stock
	}
	if input.Images != nil {
		variant.Images = input.Images
	}

	if err := s.productRepo.UpdateVariant(ctx, variant); err != nil {
		return nil, errors.Wrap(err, "failed to update variant")
	}

	return variant, nil
}

// DeleteVariant removes a variant. Deleting the last variant drops the
// product back to flat pricing with zeroed price and stock, which the admin
// must then set before the product is sellable again.
func (s *catalogService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to find product")
	}

	if product.FindVariant(variantID) == nil {
		return domainerrors.ErrVariantNotFound
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		txProductRepo := txRepoFactory.NewProductRepository()

		if err := txProductRepo.DeleteVariant(ctx, productID, variantID); err != nil {
			return errors.Wrap(err, "failed to delete variant")
		}

		if len(product.Variants) == 1 {
			product.SwitchToFlatPricing(0, 0)
			if err := txProductRepo.Update(ctx, product); err != nil {
				return errors.Wrap(err, "failed to switch pricing mode")
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return domainerrors.ErrVariantNotFound
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return err
		}

		return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return nil
}

// mergeAttributes overlays updates onto current by key; keys absent from
// updates keep their current value.
func mergeAttributes(current, updates entity.Attributes) entity.Attributes {
	merged := make(entity.Attributes, 0, len(current)+len(updates))
	merged = append(merged, current...)

	for _, update := range updates.Normalize() {
		replaced := false
		for i := range merged {
			if merged[i].Key == update.Key {
				merged[i].Value = update.Value
				replaced = true

				break
			}
		}
		if !replaced {
			merged = append(merged, update)
		}
	}

	return merged
}
