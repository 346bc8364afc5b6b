package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	txManager    *mockRepo.MockTransactionManager
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	svc := NewCatalogService(CatalogServiceParams{
		TxManager:    txManager,
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return catalogServiceFixtures{
		service:      svc,
		txManager:    txManager,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (fx catalogServiceFixtures) expectTransaction(t *testing.T, factory *mockRepo.MockRepositoryFactory) {
	t.Helper()
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func int64Ptr(v int64) *int64 { return &v }

func TestCatalogService_CreateProduct_Flat(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.categoryRepo.EXPECT().
		CountByIDs(ctx, []uuid.UUID{categoryID}).
		Return(int64(1), nil)
	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:        "保溫瓶",
		CategoryIDs: []uuid.UUID{categoryID},
		Price:       1000,
		Stock:       20,
	})
	require.NoError(t, err)
	assert.False(t, product.HasVariants)
	assert.Equal(t, int64(1000), product.Price)
	assert.Equal(t, int64(20), product.Stock)
}

func TestCatalogService_CreateProduct_FlatRequiresPositivePrice(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:  "免費商品",
		Price: 0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrFlatPricingRequired)
}

func TestCatalogService_CreateProduct_UnknownCategoryRef(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryIDs := []uuid.UUID{uuid.New(), uuid.New()}

	fx.categoryRepo.EXPECT().
		CountByIDs(ctx, categoryIDs).
		Return(int64(1), nil)

	_, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:        "保溫瓶",
		CategoryIDs: categoryIDs,
		Price:       1000,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCategoryRefs)
}

func TestCatalogService_UpdateProduct_IgnoresPriceInVariantMode(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	fx.productRepo.EXPECT().Update(ctx, product).Return(nil)

	updated, err := fx.service.UpdateProduct(ctx, product.ID, usecase.UpdateProductInput{
		Price: int64Ptr(9999),
		Stock: int64Ptr(1),
	})
	require.NoError(t, err)
	// Pricing lives on the variants; the product-level fields stay zeroed.
	assert.Equal(t, int64(0), updated.Price)
	assert.Equal(t, int64(0), updated.Stock)
}

func TestCatalogService_AddVariant_FirstVariantSwitchesPricingMode(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product := flatProduct(1000, 20)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.HasVariants && p.Price == 0 && p.Stock == 0
		})).
		Return(nil)
	txProductRepo.EXPECT().
		CreateVariant(ctx, mock.AnythingOfType("*entity.Variant")).
		Return(nil)
	fx.expectTransaction(t, factory)

	variant, err := fx.service.AddVariant(ctx, product.ID, usecase.AddVariantInput{
		SKU:        "BTL-500",
		Attributes: entity.Attributes{{Key: "Size", Value: " 500ml "}},
		Price:      1200,
		Stock:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, product.ID, variant.ProductID)
	assert.Equal(t, entity.Attributes{{Key: "size", Value: "500ml"}}, variant.Attributes)
}

func TestCatalogService_AddVariant_DuplicateNormalizedAttributes(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8) // Carries {color: red, size: m}.

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	// Same pair up to case, whitespace and key order: a duplicate.
	_, err := fx.service.AddVariant(ctx, product.ID, usecase.AddVariantInput{
		Attributes: entity.Attributes{
			{Key: "Size", Value: "M "},
			{Key: "COLOR", Value: " Red"},
		},
		Price: 2600,
		Stock: 5,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateAttributes)
}

func TestCatalogService_AddVariant_MalformedAttributes(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.AddVariant(context.Background(), uuid.New(), usecase.AddVariantInput{
		Attributes: entity.Attributes{{Key: "", Value: "red"}},
		Price:      2600,
		Stock:      5,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAttributes)
}

func TestCatalogService_AddVariant_ProductDeletedMidTransaction(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	// The product vanishes between the read and the insert; the foreign key
	// miss must surface as not-found, not as an opaque transaction failure.
	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().
		CreateVariant(ctx, mock.AnythingOfType("*entity.Variant")).
		Return(repository.ErrProductNotFound)
	fx.expectTransaction(t, factory)

	_, err := fx.service.AddVariant(ctx, product.ID, usecase.AddVariantInput{
		Attributes: entity.Attributes{{Key: "color", Value: "green"}},
		Price:      2600,
		Stock:      5,
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_UpdateVariant_MergesAttributesByKey(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, variant := variantProduct(2500, 8)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	fx.productRepo.EXPECT().
		UpdateVariant(ctx, mock.AnythingOfType("*entity.Variant")).
		Return(nil)

	updated, err := fx.service.UpdateVariant(ctx, product.ID, variant.ID, usecase.UpdateVariantInput{
		Attributes: entity.Attributes{{Key: "Size", Value: "L"}},
		Price:      int64Ptr(2800),
	})
	require.NoError(t, err)
	// The color survives the merge, only the size changes.
	assert.Equal(t, entity.Attributes{
		{Key: "color", Value: "red"},
		{Key: "size", Value: "l"},
	}, updated.Attributes)
	assert.Equal(t, int64(2800), updated.Price)
	assert.Equal(t, int64(8), updated.Stock)
}

func TestCatalogService_UpdateVariant_CollidesWithSibling(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8)
	sibling := entity.Variant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Attributes: entity.Attributes{
			{Key: "color", Value: "red"},
			{Key: "size", Value: "l"},
		},
		Price: 2600,
		Stock: 3,
	}
	product.Variants = append(product.Variants, sibling)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	_, err := fx.service.UpdateVariant(ctx, product.ID, product.Variants[0].ID, usecase.UpdateVariantInput{
		Attributes: entity.Attributes{{Key: "size", Value: "L"}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateAttributes)
}

func TestCatalogService_DeleteVariant_LastVariantRestoresFlatPricing(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, variant := variantProduct(2500, 8)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().DeleteVariant(ctx, product.ID, variant.ID).Return(nil)
	txProductRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return !p.HasVariants && p.Price == 0 && p.Stock == 0
		})).
		Return(nil)
	fx.expectTransaction(t, factory)

	err := fx.service.DeleteVariant(ctx, product.ID, variant.ID)
	require.NoError(t, err)
}

func TestCatalogService_DeleteVariant_KeepsVariantModeWhileOthersRemain(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, variant := variantProduct(2500, 8)
	product.Variants = append(product.Variants, entity.Variant{
		ID:         uuid.New(),
		ProductID:  product.ID,
		Attributes: entity.Attributes{{Key: "color", Value: "blue"}, {Key: "size", Value: "m"}},
		Price:      2600,
		Stock:      4,
	})

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().DeleteVariant(ctx, product.ID, variant.ID).Return(nil)
	fx.expectTransaction(t, factory)

	// No product update: the pricing mode stays put.
	err := fx.service.DeleteVariant(ctx, product.ID, variant.ID)
	require.NoError(t, err)
}

func TestCatalogService_DeleteVariant_VariantDeletedMidTransaction(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	product, variant := variantProduct(2500, 8)
	product.Variants = append(product.Variants, entity.Variant{
		ID:         uuid.New(),
		ProductID:  product.ID,
		Attributes: entity.Attributes{{Key: "color", Value: "blue"}, {Key: "size", Value: "m"}},
		Price:      2600,
		Stock:      4,
	})

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	// A concurrent delete won the race; not-found passes through untouched.
	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().
		DeleteVariant(ctx, product.ID, variant.ID).
		Return(repository.ErrVariantNotFound)
	fx.expectTransaction(t, factory)

	err := fx.service.DeleteVariant(ctx, product.ID, variant.ID)
	assert.ErrorIs(t, err, domainerrors.ErrVariantNotFound)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, productID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
