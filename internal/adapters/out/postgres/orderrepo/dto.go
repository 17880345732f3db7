// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Applications and assignments live in child tables and are always loaded
// with the order, so the aggregate round-trips as one unit. The version
// column backs optimistic concurrency on updates.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy       uuid.UUID `gorm:"type:uuid;index"`
	Title           string
	Address         string
	PricePerHour    int
	ScheduledAt     *time.Time // nil means "soon"
	DurationMillis  int64
	RequiredWorkers int
	Tags            pq.StringArray `gorm:"type:text[]"`
	Metadata        []byte         `gorm:"type:jsonb"`
	Comment         string
	CancelReason    string
	Status          int `gorm:"index"`
	Version         int

	Applications []ApplicationDTO `gorm:"foreignKey:OrderID;references:ID"`
	Assignments  []AssignmentDTO  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ApplicationDTO represents one worker's application row, keyed by order and
// worker. Rows are only ever inserted or status-updated, never deleted.
type ApplicationDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoaderID        uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Status          int       `gorm:"index"`
	AppliedAtMillis int64
	Rating          *float64
}

// TableName specifies the database table name for application entities.
func (ApplicationDTO) TableName() string {
	return "order_applications"
}

// AssignmentDTO represents one worker's assignment row, keyed by order and
// worker. The status index serves the global exclusivity queries.
type AssignmentDTO struct {
	OrderID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoaderID         uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Status           int       `gorm:"index"`
	AssignedAtMillis int64
	StartedAtMillis  *int64
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var scheduledAt *time.Time
	if exact, ok := aggregate.Schedule().ExactTime(); ok {
		scheduledAt = &exact
	}

	metadata, err := json.Marshal(aggregate.Metadata())
	if err != nil {
		return OrderDTO{}, err
	}

	applications := aggregate.Applications()
	applicationDTOs := make([]ApplicationDTO, 0, len(applications))
	for _, a := range applications {
		applicationDTOs = append(applicationDTOs, ApplicationDTO{
			OrderID:         a.OrderID().Bytes(),
			LoaderID:        a.LoaderID().Bytes(),
			Status:          int(a.Status()),
			AppliedAtMillis: a.AppliedAtMillis(),
			Rating:          a.Rating(),
		})
	}

	assignments := aggregate.Assignments()
	assignmentDTOs := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		assignmentDTOs = append(assignmentDTOs, AssignmentDTO{
			OrderID:          a.OrderID().Bytes(),
			LoaderID:         a.LoaderID().Bytes(),
			Status:           int(a.Status()),
			AssignedAtMillis: a.AssignedAtMillis(),
			StartedAtMillis:  a.StartedAtMillis(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CreatedBy:       aggregate.CreatedBy().Bytes(),
		Title:           aggregate.Title(),
		Address:         aggregate.Address(),
		PricePerHour:    aggregate.PricePerHour(),
		ScheduledAt:     scheduledAt,
		DurationMillis:  aggregate.Duration().Milliseconds(),
		RequiredWorkers: aggregate.RequiredWorkers(),
		Tags:            pq.StringArray(aggregate.Tags()),
		Metadata:        metadata,
		Comment:         aggregate.Comment(),
		CancelReason:    aggregate.CancelReason(),
		Status:          int(aggregate.Status()),
		Version:         aggregate.Version(),
		Applications:    applicationDTOs,
		Assignments:     assignmentDTOs,
	}, nil
}

// toDomain converts a database DTO back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	schedule := kernel.NewSoonSchedule()
	if dto.ScheduledAt != nil {
		schedule, err = kernel.NewExactSchedule(*dto.ScheduledAt)
		if err != nil {
			return nil, err
		}
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	applications := make([]order.Application, 0, len(dto.Applications))
	for _, a := range dto.Applications {
		restored, appErr := applicationToDomain(a)
		if appErr != nil {
			return nil, appErr
		}
		applications = append(applications, restored)
	}

	assignments := make([]order.Assignment, 0, len(dto.Assignments))
	for _, a := range dto.Assignments {
		restored, asgErr := assignmentToDomain(a)
		if asgErr != nil {
			return nil, asgErr
		}
		assignments = append(assignments, restored)
	}

	return order.RestoreOrder(
		id, createdBy, dto.Title, dto.Address, dto.PricePerHour,
		schedule, time.Duration(dto.DurationMillis)*time.Millisecond,
		dto.RequiredWorkers, []string(dto.Tags), metadata,
		dto.Comment, dto.CancelReason, order.Status(dto.Status),
		applications, assignments, dto.Version,
	)
}

func applicationToDomain(dto ApplicationDTO) (order.Application, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Application{}, err
	}
	loaderID, err := kernel.UUIDFromBytes(dto.LoaderID[:])
	if err != nil {
		return order.Application{}, err
	}

	return order.RestoreApplication(
		orderID, loaderID, order.ApplicationStatus(dto.Status),
		dto.AppliedAtMillis, dto.Rating,
	)
}

func assignmentToDomain(dto AssignmentDTO) (order.Assignment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Assignment{}, err
	}
	loaderID, err := kernel.UUIDFromBytes(dto.LoaderID[:])
	if err != nil {
		return order.Assignment{}, err
	}

	return order.RestoreAssignment(
		orderID, loaderID, order.AssignmentStatus(dto.Status),
		dto.AssignedAtMillis, dto.StartedAtMillis,
	)
}
