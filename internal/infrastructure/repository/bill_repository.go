package repository

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *billRepository) Submit(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Unscoped().Model(&entity.Bill{}).Where("id = ?", bill.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainRepo.ErrDuplicate
		}

		customer, err := upsertCustomer(tx, bill)
		if err != nil {
			return err
		}
		bill.CustomerID = customer.ID

		if err := takeStock(tx, bill); err != nil {
			return err
		}

		if err := tx.Create(bill).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// upsertCustomer finds the customer for the bill's vehicle, creating or
// restoring the row as needed, and records the visit
func upsertCustomer(tx *gorm.DB, bill *entity.Bill) (*entity.Customer, error) {
	seed := entity.Customer{VehicleNumber: bill.VehicleNumber}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vehicle_number"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var customer entity.Customer
	if err := tx.Unscoped().
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vehicle_number = ?", bill.VehicleNumber).
		First(&customer).Error; err != nil {
		return nil, err
	}

	customer.DeletedAt = gorm.DeletedAt{}
	customer.MergeContact(billing.Customer{
		Name:    bill.CustomerName,
		Mobile:  bill.Mobile,
		Company: bill.Company,
	})
	customer.VisitCount++
	customer.TotalSpent += bill.Total
	visited := bill.BilledAt
	customer.LastVisitAt = &visited

	if err := tx.Unscoped().Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// takeStock copies product costs onto the bill lines and decrements stock.
// Each decrement is conditional on enough units remaining.
func takeStock(tx *gorm.DB, bill *entity.Bill) error {
	wanted := make(map[uuid.UUID]int)
	for _, item := range bill.Items {
		if item.ProductID != nil {
			wanted[*item.ProductID] += item.Quantity
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	// Fixed lock order between concurrent submissions
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	var products []entity.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return &domainRepo.InsufficientStockError{
				ProductID: id,
				Name:      nameOnBill(bill, id),
				Requested: wanted[id],
			}
		}

		result := tx.Model(&entity.Product{}).
			Where("id = ? AND quantity >= ?", id, wanted[id]).
			Update("quantity", gorm.Expr("quantity - ?", wanted[id]))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var available int
			if err := tx.Model(&entity.Product{}).Where("id = ?", id).
				Select("quantity").Scan(&available).Error; err != nil {
				return err
			}
			return &domainRepo.InsufficientStockError{
				ProductID: id,
				Name:      product.Name,
				Requested: wanted[id],
				Available: available,
			}
		}
	}

	for i := range bill.Items {
		if pid := bill.Items[i].ProductID; pid != nil {
			bill.Items[i].UnitCost = byID[*pid].Cost
		}
	}
	return nil
}

func nameOnBill(bill *entity.Bill, productID uuid.UUID) string {
	for _, item := range bill.Items {
		if item.ProductID != nil && *item.ProductID == productID {
			return item.Name
		}
	}
	return productID.String()
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Preload("Customer").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR vehicle_number ILIKE ? OR mobile ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.VehicleNumber != "" {
		query = query.Where("vehicle_number = ?", strings.ToUpper(params.VehicleNumber))
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("billed_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("billed_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", orderedItems).
		Order("billed_at " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

// billKeyset walks bills newest first, the same order as the page listing
var billKeyset = pagination.Keyset{Column: "billed_at", Descending: true}

// ListWithCursor returns bills using cursor-based pagination
func (r *billRepository) ListWithCursor(ctx context.Context, params *domainRepo.BillCursorFilterParams) ([]entity.Bill, error) {
	var bills []entity.Bill

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.VehicleNumber != "" {
		query = query.Where("vehicle_number = ?", strings.ToUpper(params.VehicleNumber))
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("billed_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("billed_at < ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		where, args := billKeyset.After(cursor, params.Cursor.Direction)
		query = query.Where(where, args...)
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Items", orderedItems).
		Order(billKeyset.OrderBy(params.Cursor.Direction)).
		Find(&bills).Error

	return bills, err
}

func (r *billRepository) ListBetween(ctx context.Context, start, end time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Where("status = ? AND billed_at >= ? AND billed_at < ?", enum.BillStatusPaid, start, end).
		Preload("Items", orderedItems).
		Order("billed_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("status = ? AND billed_at >= ? AND billed_at < ?", enum.BillStatusPaid, start, end).
		Count(&total).Error
	return total, err
}

func (r *billRepository) Void(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill entity.Bill
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&bill, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRepo.ErrNotFound
		}
		if err != nil {
			return err
		}
		if bill.IsVoid() {
			return domainRepo.ErrAlreadyVoid
		}

		now := time.Now()
		if err := tx.Model(&bill).Updates(map[string]interface{}{
			"status":    enum.BillStatusVoid,
			"voided_at": now,
			"voided_by": userID,
		}).Error; err != nil {
			return err
		}

		for _, item := range bill.Items {
			if item.ProductID == nil {
				continue
			}
			if err := tx.Unscoped().Model(&entity.Product{}).
				Where("id = ?", *item.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&entity.Customer{}).
			Where("id = ?", bill.CustomerID).
			Updates(map[string]interface{}{
				"visit_count": gorm.Expr("GREATEST(visit_count - 1, 0)"),
				"total_spent": gorm.Expr("total_spent - ?", bill.Total),
			}).Error
	})
}
