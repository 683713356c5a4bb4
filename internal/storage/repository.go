// ABOUTME: Repository interface for the drink/exercise ledger store.
// ABOUTME: Defines the event-store contract the derivation engine relies on.
package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

// Repository defines the storage contract for ledger entries and
// check-ins. This interface allows swapping implementations (sqlite,
// Charm KV, test fakes). UpdateEntry is the user-edit path and errors on
// a missing id; UpdateEntryDerived on a missing id must be a no-op so
// reconciliation tolerates concurrent deletes.
type Repository interface {
	// Ledger entry operations
	CreateEntry(e *models.LedgerEntry) error
	GetEntry(idOrPrefix string) (*models.LedgerEntry, error)
	ListEntries(limit int) ([]*models.LedgerEntry, error)
	ListEntriesBetween(start, end time.Time) ([]*models.LedgerEntry, error)
	UpdateEntry(e *models.LedgerEntry) error
	UpdateEntryDerived(id uuid.UUID, minutes int, kcal, multiplier float64, bonusNote string) error
	DeleteEntry(idOrPrefix string) (*models.LedgerEntry, error)

	// Check-in operations
	CreateCheckIn(c *models.CheckIn) error
	GetCheckIn(idOrPrefix string) (*models.CheckIn, error)
	ListCheckIns(limit int) ([]*models.CheckIn, error)
	FindCheckInOn(day time.Time) (*models.CheckIn, error)
	DeleteCheckIn(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
