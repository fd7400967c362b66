package repository

import (
	"context"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines the interface for submitted bill operations
type BillRepository interface {
	// Submit stores a bill in one transaction: the customer row is created or
	// updated from the bill header, product stock is decremented, and the bill
	// and its items are inserted. It returns *InsufficientStockError when a
	// product is short and ErrDuplicate when the bill id already exists.
	Submit(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ListWithCursor(ctx context.Context, params *BillCursorFilterParams) ([]entity.Bill, error)
	// ListBetween returns paid bills with items billed in [start, end)
	ListBetween(ctx context.Context, start, end time.Time) ([]entity.Bill, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
	// Void marks a bill void and puts its product quantities back on the shelf
	Void(ctx context.Context, id, userID uuid.UUID) error
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	VehicleNumber string
	PaymentMethod string
	Status        *enum.BillStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortOrder     string
}

// BillCursorFilterParams contains cursor-based filtering for bill queries
type BillCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	VehicleNumber string
	PaymentMethod string
	Status        *enum.BillStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// BillArchive keeps an off-site copy of submitted bills
type BillArchive interface {
	Archive(ctx context.Context, bill *billing.Bill) error
}
