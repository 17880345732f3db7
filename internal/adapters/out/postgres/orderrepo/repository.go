package orderrepo

import (
	"context"
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. The tracker may
// be nil for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its applications and assignments.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == activeAssignmentIndex {
				return errs.NewConflictError("", aggregate.ID().String())
			}
			return errs.NewStateError("order already exists")
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update saves a changed aggregate. The order row is written with a version
// check; zero affected rows means another transaction got there first and
// the whole update fails with a conflict. Application and assignment rows
// are upserted, never deleted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Select("Title", "Address", "PricePerHour", "ScheduledAt", "DurationMillis",
			"RequiredWorkers", "Tags", "Metadata", "Comment", "CancelReason",
			"Status", "Version").
		Updates(map[string]any{
			"title":            dto.Title,
			"address":          dto.Address,
			"price_per_hour":   dto.PricePerHour,
			"scheduled_at":     dto.ScheduledAt,
			"duration_millis":  dto.DurationMillis,
			"required_workers": dto.RequiredWorkers,
			"tags":             dto.Tags,
			"metadata":         dto.Metadata,
			"comment":          dto.Comment,
			"cancel_reason":    dto.CancelReason,
			"status":           dto.Status,
			"version":          dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err = db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
		}
		return errs.NewConflictError("", aggregate.ID().String())
	}

	if len(dto.Applications) > 0 {
		if err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "loader_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "applied_at_millis", "rating"}),
		}).Create(&dto.Applications).Error; err != nil {
			return err
		}
	}

	if len(dto.Assignments) > 0 {
		if err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "loader_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "assigned_at_millis", "started_at_millis"}),
		}).Create(&dto.Assignments).Error; err != nil {
			// The partial unique index caught a worker going ACTIVE on a
			// second order.
			if constraint, ok := uniqueViolation(err); ok && constraint == activeAssignmentIndex {
				return errs.NewConflictError("", aggregate.ID().String())
			}
			return err
		}
	}

	r.track(aggregate)
	return nil
}

// Get retrieves a fully joined order aggregate by id.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Applications").
		Preload("Assignments").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStaffingStatus retrieves all orders still looking for workers.
func (r *GormOrderRepository) GetAllInStaffingStatus(ctx context.Context) ([]*order.Order, error) {
	return r.getAllWhere(ctx, "status = ?", int(order.StatusStaffing))
}

// GetAll retrieves every order in the store, fully joined. Feeds the
// snapshot stream; not part of the repository port.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.getAllWhere(ctx, "1 = 1")
}

// HasActiveAssignment reports whether the worker is busy on any order.
func (r *GormOrderRepository) HasActiveAssignment(ctx context.Context, loaderID kernel.UUID) (bool, error) {
	if err := loaderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("loader_id = ? AND status = ?", loaderID.Bytes(), int(order.AssignmentActive)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetBusyAssignments resolves active assignments for a set of workers in one
// query, mapping each busy worker to the order holding them.
func (r *GormOrderRepository) GetBusyAssignments(
	ctx context.Context, loaderIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	busy := make(map[kernel.UUID]kernel.UUID)
	if len(loaderIDs) == 0 {
		return busy, nil
	}

	raw := make([]uuid.UUID, 0, len(loaderIDs))
	for _, id := range loaderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var rows []AssignmentDTO
	err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("loader_id IN ? AND status = ?", raw, int(order.AssignmentActive)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		loaderID, idErr := kernel.UUIDFromBytes(row.LoaderID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderID, idErr := kernel.UUIDFromBytes(row.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		busy[loaderID] = orderID
	}

	return busy, nil
}

// CountActiveApplicationsForLimit counts the worker's Applied and Selected
// applications on non-terminal orders.
func (r *GormOrderRepository) CountActiveApplicationsForLimit(
	ctx context.Context, loaderID kernel.UUID,
) (int, error) {
	if err := loaderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ApplicationDTO{}).
		Joins("JOIN orders ON orders.id = order_applications.order_id").
		Where("order_applications.loader_id = ?", loaderID.Bytes()).
		Where("order_applications.status IN ?",
			[]int{int(order.ApplicationApplied), int(order.ApplicationSelected)}).
		Where("orders.status IN ?",
			[]int{int(order.StatusStaffing), int(order.StatusInProgress)}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormOrderRepository) getAllWhere(ctx context.Context, cond string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Applications").
		Preload("Assignments").
		Where(cond, args...).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

// uniqueViolation reports whether err is a unique violation and which
// constraint raised it.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
