// ABOUTME: Export and import support for the Charm KV backend.
// ABOUTME: Makes the Client a drop-in storage.Repository implementation.
package charm

import (
	"time"

	"github.com/harperreed/payback/internal/storage"
)

var _ storage.Repository = (*Client)(nil)

// GetAllData exports the full ledger from the KV store.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	entries, err := c.ListEntries(0)
	if err != nil {
		return nil, err
	}
	checkins, err := c.ListCheckIns(0)
	if err != nil {
		return nil, err
	}

	return &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "payback",
		Entries:    entries,
		CheckIns:   checkins,
	}, nil
}

// ImportData loads exported data into the KV store, skipping records
// whose IDs are already present.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, e := range data.Entries {
		existing, err := c.get(EntryPrefix + e.ID.String())
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := c.CreateEntry(e); err != nil {
			return err
		}
	}

	for _, ci := range data.CheckIns {
		existing, err := c.get(CheckInPrefix + ci.ID.String())
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := c.CreateCheckIn(ci); err != nil {
			return err
		}
	}

	return nil
}
