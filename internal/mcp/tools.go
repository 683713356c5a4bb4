// ABOUTME: MCP tool implementations for the payback ledger.
// ABOUTME: Drinks, exercise, check-ins, and derived status/grade queries.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_drink
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_drink",
		Description: "Record a drink from the beer style catalog and charge the debt",
	}, s.handleAddDrink)

	// add_custom_drink
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_custom_drink",
		Description: "Record a drink by raw volume and ABV for drinks outside the catalog",
	}, s.handleAddCustomDrink)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Record exercise minutes, applying the streak bonus if one is active",
	}, s.handleAddExercise)

	// add_checkin
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_checkin",
		Description: "Record a daily check-in with rest-day and wellness flags",
	}, s.handleAddCheckIn)

	// edit_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_entry",
		Description: "Edit a ledger entry by ID, re-deriving its cost or earned minutes",
	}, s.handleEditEntry)

	// list_entries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List recent ledger entries, most recent first",
	}, s.handleListEntries)

	// delete_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a ledger entry by ID or ID prefix",
	}, s.handleDeleteEntry)

	// get_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_status",
		Description: "Get the running balance, today's classification, streak, and multiplier",
	}, s.handleGetStatus)

	// get_grade
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_grade",
		Description: "Get the 28-day performance grade",
	}, s.handleGetGrade)
}

// parseWhen parses an optional timestamp; empty means now. A value that
// parses as neither RFC 3339 nor "YYYY-MM-DD HH:MM" is reported as an
// error, never silently replaced.
func parseWhen(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", value)
	}
	return t, nil
}

// Tool input/output types

type addDrinkInput struct {
	Style     string  `json:"style" jsonschema:"Beer style key (hazy_ipa, pilsner, stout, etc.)"`
	Size      string  `json:"size,omitempty" jsonschema:"Serving size in ml (350, 500, 473, 568, 250, 1000), defaults to 350"`
	Count     float64 `json:"count,omitempty" jsonschema:"Number of servings, defaults to 1"`
	ABV       float64 `json:"abv,omitempty" jsonschema:"Alcohol by volume percent"`
	Brewery   string  `json:"brewery,omitempty" jsonschema:"Brewery name"`
	Brand     string  `json:"brand,omitempty" jsonschema:"Beer brand or product name"`
	Rating    int     `json:"rating,omitempty" jsonschema:"Rating 1-5"`
	Timestamp string  `json:"timestamp,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Notes     string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type addCustomDrinkInput struct {
	VolumeML  float64 `json:"volume_ml" jsonschema:"Drink volume in milliliters"`
	ABV       float64 `json:"abv" jsonschema:"Alcohol by volume percent"`
	Dry       bool    `json:"dry,omitempty" jsonschema:"True for dry drinks (low residual sugar)"`
	Timestamp string  `json:"timestamp,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Notes     string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type drinkOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Minutes   int    `json:"minutes"`
	BonusLost bool   `json:"bonus_lost,omitempty"`
	Message   string `json:"message"`
}

type addExerciseInput struct {
	Exercise  string `json:"exercise,omitempty" jsonschema:"Exercise key (stepper, walking, running, etc.), defaults to the profile default"`
	Minutes   int    `json:"minutes" jsonschema:"Duration in minutes"`
	Timestamp string `json:"timestamp,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Notes     string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type exerciseOutput struct {
	ID         string  `json:"id"`
	Exercise   string  `json:"exercise"`
	Minutes    int     `json:"minutes"`
	Multiplier float64 `json:"multiplier"`
	DebtRepaid bool    `json:"debt_repaid"`
	Message    string  `json:"message"`
}

type addCheckInInput struct {
	RestDay       bool    `json:"rest_day" jsonschema:"True if no alcohol today"`
	WaistEase     bool    `json:"waist_ease,omitempty" jsonschema:"Waistband feels looser"`
	FootLightness bool    `json:"foot_lightness,omitempty" jsonschema:"Feet feel lighter"`
	WaterOK       bool    `json:"water_ok,omitempty" jsonschema:"Drank enough water"`
	FiberOK       bool    `json:"fiber_ok,omitempty" jsonschema:"Ate enough fiber"`
	WeightKg      float64 `json:"weight_kg,omitempty" jsonschema:"Body weight in kg"`
	Timestamp     string  `json:"timestamp,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type listEntriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteEntryInput struct {
	ID string `json:"id" jsonschema:"Entry ID or prefix"`
}

// editEntryInput uses pointers for optional fields so an omitted field is
// distinguishable from an explicit zero. Drink fields only apply to
// drinks, exercise fields only to exercise entries.
type editEntryInput struct {
	ID        string   `json:"id" jsonschema:"Entry ID or prefix"`
	Style     *string  `json:"style,omitempty" jsonschema:"New beer style key"`
	Size      *string  `json:"size,omitempty" jsonschema:"New serving size in ml"`
	Count     *float64 `json:"count,omitempty" jsonschema:"New number of servings"`
	ABV       *float64 `json:"abv,omitempty" jsonschema:"New ABV percent"`
	VolumeML  *float64 `json:"volume_ml,omitempty" jsonschema:"New volume for custom drinks"`
	Dry       *bool    `json:"dry,omitempty" jsonschema:"New dry flag for custom drinks"`
	Brewery   *string  `json:"brewery,omitempty" jsonschema:"New brewery name"`
	Brand     *string  `json:"brand,omitempty" jsonschema:"New beer brand or product name"`
	Rating    *int     `json:"rating,omitempty" jsonschema:"New rating 1-5"`
	Minutes   *int     `json:"minutes,omitempty" jsonschema:"New exercise duration in minutes"`
	Exercise  *string  `json:"exercise,omitempty" jsonschema:"New exercise key"`
	Timestamp string   `json:"timestamp,omitempty" jsonschema:"New timestamp (ISO 8601)"`
	Notes     *string  `json:"notes,omitempty" jsonschema:"New notes, empty string clears them"`
}

type editEntryOutput struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Minutes    int     `json:"minutes"`
	Multiplier float64 `json:"multiplier,omitempty"`
	Message    string  `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddDrink(ctx context.Context, req *mcp.CallToolRequest, input addDrinkInput) (*mcp.CallToolResult, drinkOutput, error) {
	size := input.Size
	if size == "" {
		size = models.DefaultServingKey
	}
	count := input.Count
	if count == 0 {
		count = 1
	}

	at, err := parseWhen(input.Timestamp)
	if err != nil {
		return nil, drinkOutput{}, err
	}
	entry, err := engine.NewDebitFromStyle(s.profile, input.Style, size, count, input.ABV, at)
	if err != nil {
		return nil, drinkOutput{}, err
	}
	entry.Brewery = input.Brewery
	entry.Brand = input.Brand
	entry.Rating = input.Rating
	if input.Notes != "" {
		entry.WithNotes(input.Notes)
	}

	if err := s.repo.CreateEntry(entry); err != nil {
		return nil, drinkOutput{}, fmt.Errorf("failed to create entry: %w", err)
	}

	rec, err := engine.ReconcileDay(s.repo, s.profile, at)
	if err != nil {
		return nil, drinkOutput{}, fmt.Errorf("failed to reconcile day: %w", err)
	}

	msg := fmt.Sprintf("Added %s: %d min of debt (ID: %s)", entry.Name, -entry.Minutes, entry.ID.String()[:8])
	if rec.BonusLost {
		msg += "; streak bonus on today's exercise was revoked"
	}

	return nil, drinkOutput{
		ID:        entry.ID.String()[:8],
		Name:      entry.Name,
		Minutes:   entry.Minutes,
		BonusLost: rec.BonusLost,
		Message:   msg,
	}, nil
}

func (s *Server) handleAddCustomDrink(ctx context.Context, req *mcp.CallToolRequest, input addCustomDrinkInput) (*mcp.CallToolResult, drinkOutput, error) {
	at, err := parseWhen(input.Timestamp)
	if err != nil {
		return nil, drinkOutput{}, err
	}
	entry, err := engine.NewDebitCustom(s.profile, input.VolumeML, input.ABV, input.Dry, at)
	if err != nil {
		return nil, drinkOutput{}, err
	}
	if input.Notes != "" {
		entry.WithNotes(input.Notes)
	}

	if err := s.repo.CreateEntry(entry); err != nil {
		return nil, drinkOutput{}, fmt.Errorf("failed to create entry: %w", err)
	}

	rec, err := engine.ReconcileDay(s.repo, s.profile, at)
	if err != nil {
		return nil, drinkOutput{}, fmt.Errorf("failed to reconcile day: %w", err)
	}

	msg := fmt.Sprintf("Added %s: %d min of debt (ID: %s)", entry.Name, -entry.Minutes, entry.ID.String()[:8])
	if rec.BonusLost {
		msg += "; streak bonus on today's exercise was revoked"
	}

	return nil, drinkOutput{
		ID:        entry.ID.String()[:8],
		Name:      entry.Name,
		Minutes:   entry.Minutes,
		BonusLost: rec.BonusLost,
		Message:   msg,
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	exercise := input.Exercise
	if exercise == "" {
		exercise = s.profile.DefaultExercise
	}
	if exercise == "" {
		exercise = models.DefaultExerciseKey
	}

	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(0)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to list checkins: %w", err)
	}

	at, err := parseWhen(input.Timestamp)
	if err != nil {
		return nil, exerciseOutput{}, err
	}
	result, err := engine.NewCredit(s.profile, exercise, input.Minutes, at, true, entries, checkins)
	if err != nil {
		return nil, exerciseOutput{}, err
	}
	if input.Notes != "" {
		result.Entry.WithNotes(input.Notes)
	}

	if err := s.repo.CreateEntry(result.Entry); err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to create entry: %w", err)
	}

	msg := fmt.Sprintf("Added %s: +%d min (ID: %s)", result.Entry.Name, result.Entry.Minutes, result.Entry.ID.String()[:8])
	if result.Entry.BonusNote != "" {
		msg += " " + result.Entry.BonusNote
	}
	if result.DebtRepaid {
		msg += "; debt fully repaid 🎉"
	}

	return nil, exerciseOutput{
		ID:         result.Entry.ID.String()[:8],
		Exercise:   exercise,
		Minutes:    result.Entry.Minutes,
		Multiplier: result.Entry.Multiplier,
		DebtRepaid: result.DebtRepaid,
		Message:    msg,
	}, nil
}

func (s *Server) handleAddCheckIn(ctx context.Context, req *mcp.CallToolRequest, input addCheckInInput) (*mcp.CallToolResult, simpleOutput, error) {
	at, err := parseWhen(input.Timestamp)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	existing, err := s.repo.FindCheckInOn(at)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to look up checkin: %w", err)
	}
	if existing != nil {
		if err := s.repo.DeleteCheckIn(existing.ID.String()); err != nil {
			return nil, simpleOutput{}, fmt.Errorf("failed to replace checkin: %w", err)
		}
	}

	c := models.NewCheckIn(input.RestDay).WithTimestamp(at)
	c.WaistEase = input.WaistEase
	c.FootLightness = input.FootLightness
	c.WaterOK = input.WaterOK
	c.FiberOK = input.FiberOK
	if input.WeightKg > 0 {
		c.WithWeight(input.WeightKg)
	}

	if err := s.repo.CreateCheckIn(c); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to create checkin: %w", err)
	}

	msg := fmt.Sprintf("Checked in for %s (ID: %s)", at.Format("2006-01-02"), c.ID.String()[:8])
	if existing != nil {
		msg += ", replacing the earlier check-in"
	}
	return nil, simpleOutput{Message: msg}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	entries, err := s.repo.ListEntries(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No entries found."}, nil
	}

	return nil, entries, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input deleteEntryInput) (*mcp.CallToolResult, simpleOutput, error) {
	deleted, err := s.repo.DeleteEntry(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}

	msg := fmt.Sprintf("Deleted entry: %s", input.ID)
	if deleted.IsDebit() {
		rec, err := engine.ReconcileDay(s.repo, s.profile, deleted.Timestamp)
		if err != nil {
			return nil, simpleOutput{}, fmt.Errorf("failed to reconcile day: %w", err)
		}
		if rec.BonusGained {
			msg += "; streak bonus restored on that day's exercise"
		}
	}

	return nil, simpleOutput{Message: msg}, nil
}

func (s *Server) handleEditEntry(ctx context.Context, req *mcp.CallToolRequest, input editEntryInput) (*mcp.CallToolResult, editEntryOutput, error) {
	old, err := s.repo.GetEntry(input.ID)
	if err != nil {
		return nil, editEntryOutput{}, fmt.Errorf("failed to get entry: %w", err)
	}

	edit := engine.EditRequest{
		Style:    input.Style,
		Size:     input.Size,
		Count:    input.Count,
		ABV:      input.ABV,
		VolumeML: input.VolumeML,
		Dry:      input.Dry,
		Brewery:  input.Brewery,
		Brand:    input.Brand,
		Rating:   input.Rating,
		Minutes:  input.Minutes,
		Exercise: input.Exercise,
		Notes:    input.Notes,
	}
	if input.Timestamp != "" {
		at, err := parseWhen(input.Timestamp)
		if err != nil {
			return nil, editEntryOutput{}, err
		}
		edit.Timestamp = &at
	}

	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, editEntryOutput{}, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(0)
	if err != nil {
		return nil, editEntryOutput{}, fmt.Errorf("failed to list checkins: %w", err)
	}

	updated, err := engine.EditEntry(s.profile, old, edit, entries, checkins)
	if err != nil {
		return nil, editEntryOutput{}, err
	}
	if err := s.repo.UpdateEntry(updated); err != nil {
		return nil, editEntryOutput{}, fmt.Errorf("failed to update entry: %w", err)
	}

	msg := fmt.Sprintf("Updated %s: %+d min (ID: %s)", updated.Name, updated.Minutes, updated.ID.String()[:8])
	if updated.IsDebit() {
		// A moved or repriced drink re-derives the bonus on its old day
		// and, if the date changed, on its new day too.
		rec, err := engine.ReconcileDay(s.repo, s.profile, old.Timestamp)
		if err != nil {
			return nil, editEntryOutput{}, fmt.Errorf("failed to reconcile day: %w", err)
		}
		if !sameLocalDay(old.Timestamp, updated.Timestamp) {
			rec2, err := engine.ReconcileDay(s.repo, s.profile, updated.Timestamp)
			if err != nil {
				return nil, editEntryOutput{}, fmt.Errorf("failed to reconcile day: %w", err)
			}
			rec.BonusGained = rec.BonusGained || rec2.BonusGained
			rec.BonusLost = rec.BonusLost || rec2.BonusLost
		}
		if rec.BonusGained {
			msg += "; streak bonus restored on that day's exercise"
		}
		if rec.BonusLost {
			msg += "; streak bonus on that day's exercise was revoked"
		}
	}

	return nil, editEntryOutput{
		ID:         updated.ID.String()[:8],
		Name:       updated.Name,
		Minutes:    updated.Minutes,
		Multiplier: updated.Multiplier,
		Message:    msg,
	}, nil
}

// sameLocalDay reports whether two instants fall on the same local
// calendar day.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func (s *Server) handleGetStatus(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	now := time.Now()
	streak := engine.Streak(now, entries, checkins)

	return nil, map[string]interface{}{
		"balance_minutes": engine.Balance(entries),
		"today":           engine.ClassifyDay(now, entries, checkins).String(),
		"streak_days":     streak,
		"multiplier":      engine.MultiplierFor(streak),
	}, nil
}

func (s *Server) handleGetGrade(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	return nil, engine.Grade(time.Now(), entries, checkins), nil
}
