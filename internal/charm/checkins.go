// ABOUTME: Check-in CRUD operations for Charm KV storage.
// ABOUTME: Includes same-day lookup used by the day classifier.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/payback/internal/models"
)

// CreateCheckIn stores a new check-in in the KV store.
func (c *Client) CreateCheckIn(ci *models.CheckIn) error {
	key := CheckInPrefix + ci.ID.String()
	data, err := marshalJSON(ci)
	if err != nil {
		return fmt.Errorf("marshal checkin: %w", err)
	}
	return c.set(key, data)
}

// GetCheckIn retrieves a check-in by ID or ID prefix.
func (c *Client) GetCheckIn(idOrPrefix string) (*models.CheckIn, error) {
	data, err := c.getByIDPrefix(CheckInPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get checkin: %w", err)
	}

	checkin, err := unmarshalJSON[models.CheckIn](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal checkin: %w", err)
	}

	return checkin, nil
}

// ListCheckIns retrieves check-ins sorted by Timestamp descending.
// A limit of 0 means no limit.
func (c *Client) ListCheckIns(limit int) ([]*models.CheckIn, error) {
	allData, err := c.listByPrefix(CheckInPrefix)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}

	var checkins []*models.CheckIn
	for _, data := range allData {
		ci, err := unmarshalJSON[models.CheckIn](data)
		if err != nil {
			continue // Skip invalid entries
		}
		checkins = append(checkins, ci)
	}

	sort.Slice(checkins, func(i, j int) bool {
		return checkins[i].Timestamp.After(checkins[j].Timestamp)
	})

	if limit > 0 && len(checkins) > limit {
		checkins = checkins[:limit]
	}

	return checkins, nil
}

// FindCheckInOn returns the check-in recorded on the same local calendar
// day as t, or nil if there is none.
func (c *Client) FindCheckInOn(t time.Time) (*models.CheckIn, error) {
	checkins, err := c.ListCheckIns(0)
	if err != nil {
		return nil, err
	}

	wy, wm, wd := t.Local().Date()
	for _, ci := range checkins {
		y, m, d := ci.Timestamp.Local().Date()
		if y == wy && m == wm && d == wd {
			return ci, nil
		}
	}
	return nil, nil
}

// DeleteCheckIn removes a check-in by ID or prefix.
func (c *Client) DeleteCheckIn(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(CheckInPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	return nil
}
