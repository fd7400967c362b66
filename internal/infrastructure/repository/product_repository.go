package repository

import (
	"context"
	"errors"
	"time"

	"github.com/autospa/autospa-api/internal/domain/entity"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

var productSortColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity < ?", params.Threshold)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	if col, ok := productSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "ASC"
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("quantity ASC, name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&total).Error
	return total, err
}

func (r *productRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("quantity < ?", threshold).
		Count(&total).Error
	return total, err
}

// UpsertByCode imports a sheet of products. Existing codes get the new name,
// price, cost, quantity and discount; unknown codes are inserted.
func (r *productRepository) UpsertByCode(ctx context.Context, products []entity.Product) (int, int, error) {
	var created, updated int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			incoming := &products[i]

			var existing entity.Product
			err := tx.Where("code = ?", incoming.Code).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(incoming).Error; err != nil {
					return translate(err)
				}
				created++
			case err != nil:
				return err
			default:
				now := time.Now()
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"name":      incoming.Name,
					"price":     incoming.Price,
					"cost":      incoming.Cost,
					"quantity":  incoming.Quantity,
					"discount":  incoming.Discount,
					"edited_by": incoming.EditedBy,
					"edited_at": now,
				}).Error; err != nil {
					return err
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}
