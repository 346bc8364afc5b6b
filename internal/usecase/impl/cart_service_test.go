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

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func flatProduct(price, stock int64) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  "保溫瓶",
		Price: price,
		Stock: stock,
	}
}

func variantProduct(variantPrice, variantStock int64) (*entity.Product, *entity.Variant) {
	productID := uuid.New()
	variant := entity.Variant{
		ID:        uuid.New(),
		ProductID: productID,
		SKU:       "TEE-RED-M",
		Attributes: entity.Attributes{
			{Key: "color", Value: "red"},
			{Key: "size", Value: "m"},
		},
		Price: variantPrice,
		Stock: variantStock,
	}
	product := &entity.Product{
		ID:          productID,
		Name:        "T 恤",
		HasVariants: true,
		Variants:    []entity.Variant{variant},
	}

	return product, &product.Variants[0]
}

func TestCartService_AddLine_NewLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 10)

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)
	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCartNotFound)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	cart, err := fx.service.AddLine(ctx, userID, product.ID, nil, 3)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(3), cart.Lines[0].Quantity)
	assert.Equal(t, int64(1000), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(3000), cart.Lines[0].LineTotal)
	assert.Equal(t, int64(3000), cart.Total)
}

func TestCartService_AddLine_MergesExistingLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 10)

	existing := entity.NewCart(userID)
	existing.AddLine(product.ID, nil, 2, 1000)

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)
	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(existing, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	cart, err := fx.service.AddLine(ctx, userID, product.ID, nil, 3)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)
	assert.Equal(t, int64(5000), cart.Total)
}

func TestCartService_AddLine_UsesVariantPrice(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product, variant := variantProduct(2500, 8)

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)
	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCartNotFound)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	cart, err := fx.service.AddLine(ctx, userID, product.ID, &variant.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2500), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(5000), cart.Total)
	require.NotNil(t, cart.Lines[0].VariantID)
	assert.Equal(t, variant.ID, *cart.Lines[0].VariantID)
}

func TestCartService_AddLine_VariantRequiredForVariantProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8)

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)

	_, err := fx.service.AddLine(ctx, uuid.New(), product.ID, nil, 1)
	assert.ErrorIs(t, err, domainerrors.ErrVariantRequired)
}

func TestCartService_AddLine_VariantNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	product, _ := variantProduct(2500, 8)
	unknownVariant := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)

	_, err := fx.service.AddLine(ctx, uuid.New(), product.ID, &unknownVariant, 1)
	assert.ErrorIs(t, err, domainerrors.ErrVariantNotFound)
}

func TestCartService_AddLine_ProductNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.AddLine(ctx, uuid.New(), productID, nil, 1)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddLine_RejectsNonPositiveQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddLine(context.Background(), uuid.New(), uuid.New(), nil, 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_ChangeLineQuantity_IncrementBlockedAtStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 5)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 5, 1000)

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)
	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)

	_, err := fx.service.ChangeLineQuantity(ctx, userID, product.ID, nil, 1)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
	// The quantity must be untouched when the increase is rejected.
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)
}

func TestCartService_ChangeLineQuantity_DecrementBelowOneRemovesLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cart := entity.NewCart(userID)
	cart.AddLine(productID, nil, 1, 1000)

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	updated, err := fx.service.ChangeLineQuantity(ctx, userID, productID, nil, -1)
	require.NoError(t, err)
	assert.Empty(t, updated.Lines)
	assert.Equal(t, int64(0), updated.Total)
}

func TestCartService_ChangeLineQuantity_LineNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(entity.NewCart(userID), nil)

	_, err := fx.service.ChangeLineQuantity(ctx, userID, uuid.New(), nil, 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
}

func TestCartService_ChangeLineQuantity_RejectsMultiStepDelta(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.ChangeLineQuantity(context.Background(), uuid.New(), uuid.New(), nil, 2)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_RemoveLine_AbsentLineIsNoOp(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	cart := entity.NewCart(userID)
	cart.AddLine(uuid.New(), nil, 1, 500)

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)

	// No Save expectation: nothing changed, nothing is written.
	updated, err := fx.service.RemoveLine(ctx, userID, uuid.New(), nil)
	require.NoError(t, err)
	assert.Len(t, updated.Lines, 1)
}

func TestCartService_RemoveLine_DistinguishesVariantLines(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	variantID := uuid.New()

	cart := entity.NewCart(userID)
	cart.AddLine(productID, nil, 1, 500)
	cart.AddLine(productID, &variantID, 1, 700)

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	updated, err := fx.service.RemoveLine(ctx, userID, productID, &variantID)
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Nil(t, updated.Lines[0].VariantID)
	assert.Equal(t, int64(500), updated.Total)
}

func TestCartService_GetCart_EmptyViewWhenMissing(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCartNotFound)

	view, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.Total)
}

func TestCartService_GetCart_ProjectsChosenVariantOnly(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product, variant := variantProduct(2500, 8)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, &variant.ID, 2, 2500)

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(cart, nil)
	fx.productRepo.EXPECT().
		FindByID(ctx, product.ID).
		Return(product, nil)

	view, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, product.Name, view.Lines[0].ProductName)
	require.NotNil(t, view.Lines[0].Variant)
	assert.Equal(t, variant.ID, view.Lines[0].Variant.VariantID)
	assert.Equal(t, variant.Attributes, view.Lines[0].Variant.Attributes)
	assert.Equal(t, int64(5000), view.Total)
}

// The cached total must track the sum of line totals through an arbitrary
// mutation sequence.
func TestCartService_TotalInvariantAcrossMutations(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productA := flatProduct(1000, 10)
	productB := flatProduct(250, 10)

	var stored *entity.Cart

	fx.productRepo.EXPECT().
		FindByID(ctx, productA.ID).
		Return(productA, nil)
	fx.productRepo.EXPECT().
		FindByID(ctx, productB.ID).
		Return(productB, nil)
	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Cart, error) {
			if stored == nil {
				return nil, repository.ErrCartNotFound
			}
			return stored, nil
		})
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		RunAndReturn(func(_ context.Context, cart *entity.Cart) error {
			stored = cart
			return nil
		})

	assertTotal := func(cart *entity.Cart) {
		t.Helper()
		var sum int64
		for _, line := range cart.Lines {
			assert.Equal(t, line.Quantity*line.UnitPrice, line.LineTotal)
			sum += line.LineTotal
		}
		assert.Equal(t, sum, cart.Total)
	}

	cart, err := fx.service.AddLine(ctx, userID, productA.ID, nil, 2)
	require.NoError(t, err)
	assertTotal(cart)

	cart, err = fx.service.AddLine(ctx, userID, productB.ID, nil, 4)
	require.NoError(t, err)
	assertTotal(cart)

	cart, err = fx.service.AddLine(ctx, userID, productA.ID, nil, 1)
	require.NoError(t, err)
	assertTotal(cart)

	cart, err = fx.service.ChangeLineQuantity(ctx, userID, productB.ID, nil, -1)
	require.NoError(t, err)
	assertTotal(cart)

	cart, err = fx.service.RemoveLine(ctx, userID, productA.ID, nil)
	require.NoError(t, err)
	assertTotal(cart)
	assert.Equal(t, int64(750), cart.Total)
}
