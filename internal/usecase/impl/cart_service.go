// Package impl contains the implementation of the application's business logic.
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

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// resolveUnitPrice looks up the current catalog price for the (product,
// variant) pair. The returned stock is the matching pool's remaining quantity.
func (s *cartService) resolveUnitPrice(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (price, stock int64, err error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return 0, 0, domainerrors.ErrProductNotFound
		}

		return 0, 0, errors.Wrap(err, "failed to find product")
	}

	if variantID == nil {
		if product.HasVariants {
			return 0, 0, domainerrors.ErrVariantRequired
		}

		return product.Price, product.Stock, nil
	}

	variant := product.FindVariant(*variantID)
	if variant == nil {
		return 0, 0, domainerrors.ErrVariantNotFound
	}

	return variant.Price, variant.Stock, nil
}

// loadOrCreateCart fetches the user's cart, lazily creating an empty one.
func (s *cartService) loadOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return entity.NewCart(userID), nil
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

// AddLine adds or merges a line for the (product, variant) pair.
func (s *cartService) AddLine(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID, quantity int64) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	unitPrice, _, err := s.resolveUnitPrice(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddLine(productID, variantID, quantity, unitPrice)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// ChangeLineQuantity applies a single-step delta to an existing line. An
// increase is checked against the live stock of the matching pool; a decrease
// below quantity 1 removes the line.
func (s *cartService) ChangeLineQuantity(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID, delta int64) (*entity.Cart, error) {
	if delta != 1 && delta != -1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	line := cart.FindLine(productID, variantID)
	if line == nil {
		return nil, domainerrors.ErrCartLineNotFound
	}

	if delta > 0 {
		_, stock, err := s.resolveUnitPrice(ctx, productID, variantID)
		if err != nil {
			return nil, err
		}
		if line.Quantity+delta > stock {
			return nil, domainerrors.ErrOutOfStock
		}
	}

	cart.AdjustLineQuantity(productID, variantID, delta)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// RemoveLine deletes the matching line. Removing an absent line is a no-op.
func (s *cartService) RemoveLine(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return entity.NewCart(userID), nil
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	if cart.FindLine(productID, variantID) == nil {
		return cart, nil
	}

	cart.RemoveLine(productID, variantID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// Clear empties the user's cart. Clearing a missing cart succeeds.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// GetCart builds the presentation view of the cart, enriching each line with
// the product name and, for variant lines, the chosen variant's details only.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	view := &usecase.CartView{Lines: []usecase.CartLineView{}}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return view, nil
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	products := make(map[uuid.UUID]*entity.Product, len(cart.Lines))
	for _, line := range cart.Lines {
		lineView := usecase.CartLineView{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}

		product, ok := products[line.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
				return nil, errors.Wrap(err, "failed to find product")
			}
			products[line.ProductID] = product
		}

		// A line whose product was deleted keeps its frozen price but loses
		// its catalog details.
		if product != nil {
			lineView.ProductName = product.Name
			if len(product.Images) > 0 {
				lineView.Thumbnail = product.Images[0]
			}
			if line.VariantID != nil {
				if variant := product.FindVariant(*line.VariantID); variant != nil {
					lineView.Variant = &usecase.CartVariantView{
						VariantID:  variant.ID,
						Attributes: variant.Attributes,
						Images:     variant.Images,
					}
				}
			}
		}

		view.Lines = append(view.Lines, lineView)
	}
	view.Total = cart.Total

	return view, nil
}
