package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.UserProfileModel{},
		model.RefreshTokenModel{},
		model.CategoryModel{},
		model.ProductModel{},
		model.VariantModel{},
		model.ProductCategoryModel{},
		model.CartModel{},
		model.OrderModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
