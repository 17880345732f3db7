package orderrepo

import (
	"fmt"

	"staffing/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// activeAssignmentIndex is the partial unique index enforcing one ACTIVE
// assignment per worker across all orders.
const activeAssignmentIndex = "uq_order_assignments_active_loader"

// Migrate creates the order tables and the exclusivity backstop index.
//
// The in-transaction busy re-check at Start is not enough on its own: two
// concurrent starts of different orders sharing a selected worker both read
// an empty assignment set under READ COMMITTED and both insert an ACTIVE
// row. The partial unique index makes the second insert fail, which the
// repository surfaces as a conflict.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&OrderDTO{},
		&ApplicationDTO{},
		&AssignmentDTO{},
	); err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON order_assignments (loader_id) WHERE status = %d",
		activeAssignmentIndex, int(order.AssignmentActive),
	)).Error
}
