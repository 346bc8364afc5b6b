package impl

import (
	"context"
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

// categoryServiceFixtures holds all test dependencies for category service tests.
type categoryServiceFixtures struct {
	service      usecase.CategoryUsecase
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	svc := NewCategoryService(CategoryServiceParams{CategoryRepo: categoryRepo})

	return categoryServiceFixtures{
		service:      svc,
		categoryRepo: categoryRepo,
	}
}

func TestCategoryService_CreateCategory_Success(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()

	fx.categoryRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Category")).
		Return(nil)

	category, err := fx.service.CreateCategory(ctx, usecase.CategoryInput{
		Name:        "飲品",
		Description: "冷熱飲",
	})
	require.NoError(t, err)
	assert.Equal(t, "飲品", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)
}

func TestCategoryService_CreateCategory_EmptyName(t *testing.T) {
	fx := createTestCategoryService(t)

	_, err := fx.service.CreateCategory(context.Background(), usecase.CategoryInput{})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestCategoryService_UpdateCategory_PartialFields(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	category := &entity.Category{ID: uuid.New(), Name: "飲品", Description: "冷熱飲"}

	fx.categoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
	fx.categoryRepo.EXPECT().Update(ctx, category).Return(nil)

	updated, err := fx.service.UpdateCategory(ctx, category.ID, usecase.CategoryInput{Name: "甜點"})
	require.NoError(t, err)
	assert.Equal(t, "甜點", updated.Name)
	assert.Equal(t, "冷熱飲", updated.Description)
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.categoryRepo.EXPECT().
		FindByID(ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	_, err := fx.service.GetCategory(ctx, categoryID)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.categoryRepo.EXPECT().
		Delete(ctx, categoryID).
		Return(repository.ErrCategoryNotFound)

	err := fx.service.DeleteCategory(ctx, categoryID)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}
