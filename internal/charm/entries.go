// ABOUTME: Ledger entry CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

// CreateEntry stores a new ledger entry in the KV store.
func (c *Client) CreateEntry(e *models.LedgerEntry) error {
	key := EntryPrefix + e.ID.String()
	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(key, data)
}

// GetEntry retrieves a ledger entry by ID or ID prefix.
func (c *Client) GetEntry(idOrPrefix string) (*models.LedgerEntry, error) {
	data, err := c.getByIDPrefix(EntryPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entry, err := unmarshalJSON[models.LedgerEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", err)
	}

	return entry, nil
}

// ListEntries retrieves entries sorted by Timestamp descending.
// A limit of 0 means no limit.
func (c *Client) ListEntries(limit int) ([]*models.LedgerEntry, error) {
	allData, err := c.listByPrefix(EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var entries []*models.LedgerEntry
	for _, data := range allData {
		e, err := unmarshalJSON[models.LedgerEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// ListEntriesBetween retrieves entries with start <= Timestamp <= end,
// sorted ascending.
func (c *Client) ListEntriesBetween(start, end time.Time) ([]*models.LedgerEntry, error) {
	all, err := c.ListEntries(0)
	if err != nil {
		return nil, err
	}

	var entries []*models.LedgerEntry
	for _, e := range all {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries, nil
}

// UpdateEntry rewrites an existing entry in place. This is the user-edit
// path: a missing ID is an error, unlike UpdateEntryDerived.
func (c *Client) UpdateEntry(e *models.LedgerEntry) error {
	key := EntryPrefix + e.ID.String()
	existing, err := c.get(key)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("not found: %s", e.ID)
	}

	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(key, data)
}

// UpdateEntryDerived rewrites the derived fields of an entry after
// reconciliation. A missing ID is a no-op.
func (c *Client) UpdateEntryDerived(id uuid.UUID, minutes int, kcal, multiplier float64, bonusNote string) error {
	data, err := c.get(EntryPrefix + id.String())
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if data == nil {
		return nil
	}

	entry, err := unmarshalJSON[models.LedgerEntry](data)
	if err != nil {
		return fmt.Errorf("unmarshal entry: %w", err)
	}

	entry.Minutes = minutes
	entry.Kcal = kcal
	entry.Multiplier = multiplier
	entry.BonusNote = bonusNote

	updated, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(EntryPrefix+entry.ID.String(), updated)
}

// DeleteEntry removes an entry by ID or prefix and returns the deleted
// entry so callers can reconcile the affected day.
func (c *Client) DeleteEntry(idOrPrefix string) (*models.LedgerEntry, error) {
	entry, err := c.GetEntry(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := c.deleteByIDPrefix(EntryPrefix, entry.ID.String()); err != nil {
		return nil, fmt.Errorf("delete entry: %w", err)
	}
	return entry, nil
}
