package service

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type ProductService interface {
	CreateProduct(product *model.Product, userID string) error
	UpdateProduct(product *model.Product, userID string) error
	GetProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)

	CreateCategory(category *model.Category, userID string) error
	GetCategories() ([]model.Category, error)
}

type productService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryRepository,
) ProductService {
	return &productService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *productService) CreateProduct(product *model.Product, userID string) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*product.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	product.CreatedBy = userID
	product.UpdatedBy = userID
	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	// Recipe products deduct raw materials instead of a finished-goods
	// counter, so only stocked products get an inventory row.
	if !product.HasRecipe {
		inv := &model.Inventory{ProductID: product.ID}
		inv.CreatedBy = userID
		return s.inventoryRepo.Create(inv)
	}
	return nil
}

func (s *productService) UpdateProduct(product *model.Product, userID string) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	product.UpdatedBy = userID
	return s.productRepo.Update(product)
}

func (s *productService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *productService) CreateCategory(category *model.Category, userID string) error {
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	category.CreatedBy = userID
	category.UpdatedBy = userID
	return s.categoryRepo.Create(category)
}

func (s *productService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}
