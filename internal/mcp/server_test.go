// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/payback/internal/models"
	"github.com/harperreed/payback/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer creates a server backed by a temp SQLite database.
func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "payback.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	server, err := NewServer(db, models.DefaultProfile())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
}

func TestHandleAddDrink(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addDrinkInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "catalog style with defaults",
			input: addDrinkInput{
				Style: "hazy_ipa",
			},
			wantErr: false,
		},
		{
			name: "style with size and count",
			input: addDrinkInput{
				Style: "pilsner",
				Size:  "500",
				Count: 2,
			},
			wantErr: false,
		},
		{
			name: "style with provenance",
			input: addDrinkInput{
				Style:   "stout",
				Brewery: "Local Brewing",
				Brand:   "Midnight",
				Rating:  5,
				Notes:   "nitro pour",
			},
			wantErr: false,
		},
		{
			name: "unknown style",
			input: addDrinkInput{
				Style: "not_a_style",
			},
			wantErr:   true,
			errSubstr: "unknown beer style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if output.Minutes >= 0 {
				t.Errorf("Expected negative minutes for a drink, got %d", output.Minutes)
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}

			stored, err := db.GetEntry(output.ID)
			if err != nil {
				t.Errorf("Entry not persisted: %v", err)
			} else if !stored.IsDebit() {
				t.Error("Expected stored entry to be a debit")
			}
		})
	}
}

func TestHandleAddDrinkRevokesSameDayBonus(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	// Three prior rest days establish a streak.
	for i := 1; i <= 3; i++ {
		c := models.NewCheckIn(true).WithTimestamp(time.Now().AddDate(0, 0, -i))
		if err := db.CreateCheckIn(c); err != nil {
			t.Fatalf("CreateCheckIn failed: %v", err)
		}
	}

	_, exOut, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{
		Exercise: "running",
		Minutes:  30,
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if exOut.Multiplier != 1.2 {
		t.Fatalf("Expected 1.2 multiplier before the drink, got %v", exOut.Multiplier)
	}

	_, drOut, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{Style: "pilsner"})
	if err != nil {
		t.Fatalf("handleAddDrink failed: %v", err)
	}
	if !drOut.BonusLost {
		t.Error("Expected BonusLost after drinking on a bonus day")
	}

	stored, err := db.GetEntry(exOut.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if stored.Multiplier != 1.0 {
		t.Errorf("Expected multiplier forced to 1.0, got %v", stored.Multiplier)
	}
}

func TestHandleAddDrinkInvalidTimestamp(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{
		Style:     "pilsner",
		Timestamp: "last tuesday",
	})
	if err == nil {
		t.Fatal("Expected error for unparseable timestamp")
	}
	if !contains(err.Error(), "invalid timestamp") {
		t.Errorf("Error %q should mention the bad timestamp", err.Error())
	}

	// The bad input must not have been recorded as happening now.
	entries, err := db.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries after a rejected timestamp, got %d", len(entries))
	}

	_, _, err = server.handleAddCheckIn(ctx, &mcp.CallToolRequest{}, addCheckInInput{
		RestDay:   true,
		Timestamp: "03/10/2026",
	})
	if err == nil {
		t.Error("Expected error for unparseable check-in timestamp")
	}
}

func TestHandleAddCustomDrink(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleAddCustomDrink(ctx, &mcp.CallToolRequest{}, addCustomDrinkInput{
		VolumeML: 350,
		ABV:      5.0,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Minutes >= 0 {
		t.Errorf("Expected negative minutes, got %d", output.Minutes)
	}

	_, _, err = server.handleAddCustomDrink(ctx, &mcp.CallToolRequest{}, addCustomDrinkInput{
		VolumeML: 0,
		ABV:      5.0,
	})
	if err == nil {
		t.Error("Expected error for zero volume")
	}
}

func TestHandleAddExercise(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addExerciseInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "explicit exercise",
			input: addExerciseInput{
				Exercise: "walking",
				Minutes:  45,
			},
			wantErr: false,
		},
		{
			name: "default exercise",
			input: addExerciseInput{
				Minutes: 30,
			},
			wantErr: false,
		},
		{
			name: "with timestamp",
			input: addExerciseInput{
				Exercise:  "stepper",
				Minutes:   20,
				Timestamp: "2026-03-10 08:00",
			},
			wantErr: false,
		},
		{
			name: "zero minutes",
			input: addExerciseInput{
				Exercise: "running",
				Minutes:  0,
			},
			wantErr:   true,
			errSubstr: "duration must be positive",
		},
		{
			name: "unknown exercise",
			input: addExerciseInput{
				Exercise: "levitation",
				Minutes:  30,
			},
			wantErr:   true,
			errSubstr: "unknown exercise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if output.Minutes <= 0 {
				t.Errorf("Expected positive minutes, got %d", output.Minutes)
			}
			if output.Multiplier != 1.0 {
				t.Errorf("Expected 1.0 multiplier without a streak, got %v", output.Multiplier)
			}
		})
	}
}

func TestHandleAddExerciseRepaysDebt(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{Style: "session_ipa"})
	if err != nil {
		t.Fatalf("handleAddDrink failed: %v", err)
	}

	_, output, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{
		Exercise: "stepper",
		Minutes:  600,
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if !output.DebtRepaid {
		t.Error("Expected DebtRepaid after covering the drink")
	}
}

func TestHandleAddCheckIn(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleAddCheckIn(ctx, &mcp.CallToolRequest{}, addCheckInInput{
		RestDay:   true,
		WaterOK:   true,
		WeightKg:  58.5,
		WaistEase: true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	stored, err := db.FindCheckInOn(time.Now())
	if err != nil {
		t.Fatalf("FindCheckInOn failed: %v", err)
	}
	if stored == nil || !stored.RestDay || !stored.WaistEase {
		t.Errorf("Check-in not persisted correctly: %+v", stored)
	}
	if stored.WeightKg == nil || *stored.WeightKg != 58.5 {
		t.Errorf("Weight not persisted: %v", stored.WeightKg)
	}
}

func TestHandleAddCheckInReplacesSameDay(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleAddCheckIn(ctx, &mcp.CallToolRequest{}, addCheckInInput{RestDay: true})
	if err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	_, _, err = server.handleAddCheckIn(ctx, &mcp.CallToolRequest{}, addCheckInInput{RestDay: false})
	if err != nil {
		t.Fatalf("second check-in failed: %v", err)
	}

	checkins, err := db.ListCheckIns(0)
	if err != nil {
		t.Fatalf("ListCheckIns failed: %v", err)
	}
	if len(checkins) != 1 {
		t.Fatalf("Expected 1 check-in after replacement, got %d", len(checkins))
	}
	if checkins[0].RestDay {
		t.Error("Expected the replacement check-in to win")
	}
}

func TestHandleListEntries(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	e := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	_, output, err := server.handleListEntries(ctx, &mcp.CallToolRequest{}, listEntriesInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	entries, ok := output.([]*models.LedgerEntry)
	if !ok {
		t.Fatal("Expected entry slice output")
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(entries))
	}
}

func TestHandleListEntriesEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleListEntries(ctx, &mcp.CallToolRequest{}, listEntriesInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Should return a message map for empty results
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleDeleteEntry(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	e := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	_, output, err := server.handleDeleteEntry(ctx, &mcp.CallToolRequest{}, deleteEntryInput{
		ID: e.ID.String()[:8],
	})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	if _, err := db.GetEntry(e.ID.String()); err == nil {
		t.Error("Expected entry to be deleted")
	}
}

func TestHandleDeleteEntryRestoresBonus(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		c := models.NewCheckIn(true).WithTimestamp(time.Now().AddDate(0, 0, -i))
		if err := db.CreateCheckIn(c); err != nil {
			t.Fatalf("CreateCheckIn failed: %v", err)
		}
	}

	_, drOut, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{Style: "pilsner"})
	if err != nil {
		t.Fatalf("handleAddDrink failed: %v", err)
	}
	_, exOut, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{
		Exercise: "running",
		Minutes:  30,
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if exOut.Multiplier != 1.0 {
		t.Fatalf("Expected no bonus with a drink on the day, got %v", exOut.Multiplier)
	}

	_, _, err = server.handleDeleteEntry(ctx, &mcp.CallToolRequest{}, deleteEntryInput{ID: drOut.ID})
	if err != nil {
		t.Fatalf("handleDeleteEntry failed: %v", err)
	}

	stored, err := db.GetEntry(exOut.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if stored.Multiplier != 1.2 {
		t.Errorf("Expected bonus restored to 1.2, got %v", stored.Multiplier)
	}
}

func TestHandleEditEntry(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, drOut, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{Style: "stout"})
	if err != nil {
		t.Fatalf("handleAddDrink failed: %v", err)
	}
	before, err := db.GetEntry(drOut.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	style := "hazy_ipa"
	rating := 5
	_, output, err := server.handleEditEntry(ctx, &mcp.CallToolRequest{}, editEntryInput{
		ID:     drOut.ID,
		Style:  &style,
		Rating: &rating,
	})
	if err != nil {
		t.Fatalf("handleEditEntry failed: %v", err)
	}
	if output.ID != drOut.ID {
		t.Errorf("Expected the entry to keep its ID, got %s", output.ID)
	}

	stored, err := db.GetEntry(drOut.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if stored.ID != before.ID {
		t.Error("Edit minted a new identity")
	}
	if stored.Style != "hazy_ipa" || stored.Rating != 5 {
		t.Errorf("Edit not applied: %+v", stored)
	}
	if stored.Minutes >= before.Minutes {
		t.Errorf("Expected a deeper debt after restyling to a heavier beer: %d vs %d",
			stored.Minutes, before.Minutes)
	}

	entries, err := db.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected the edit to rewrite in place, got %d entries", len(entries))
	}
}

func TestHandleEditEntryMovedDrinkRestoresBonus(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		c := models.NewCheckIn(true).WithTimestamp(time.Now().AddDate(0, 0, -i))
		if err := db.CreateCheckIn(c); err != nil {
			t.Fatalf("CreateCheckIn failed: %v", err)
		}
	}

	_, drOut, err := server.handleAddDrink(ctx, &mcp.CallToolRequest{}, addDrinkInput{Style: "pilsner"})
	if err != nil {
		t.Fatalf("handleAddDrink failed: %v", err)
	}
	_, exOut, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{
		Exercise: "running",
		Minutes:  30,
	})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}
	if exOut.Multiplier != 1.0 {
		t.Fatalf("Expected no bonus with a drink on the day, got %v", exOut.Multiplier)
	}

	// Moving the drink off today's date should hand the bonus back.
	moved := time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
	_, _, err = server.handleEditEntry(ctx, &mcp.CallToolRequest{}, editEntryInput{
		ID:        drOut.ID,
		Timestamp: moved,
	})
	if err != nil {
		t.Fatalf("handleEditEntry failed: %v", err)
	}

	stored, err := db.GetEntry(exOut.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if stored.Multiplier != 1.2 {
		t.Errorf("Expected bonus restored to 1.2 after moving the drink, got %v", stored.Multiplier)
	}
}

func TestHandleEditEntryNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	minutes := 45
	_, _, err := server.handleEditEntry(ctx, &mcp.CallToolRequest{}, editEntryInput{
		ID:      "ffffffff",
		Minutes: &minutes,
	})
	if err == nil {
		t.Error("Expected error for nonexistent entry")
	}
}

func TestHandleDeleteEntryNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleDeleteEntry(ctx, &mcp.CallToolRequest{}, deleteEntryInput{
		ID: "ffffffff",
	})
	if err == nil {
		t.Error("Expected error for nonexistent entry")
	}
}

func TestHandleGetStatus(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	e := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	_, output, err := server.handleGetStatus(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	status, ok := output.(map[string]interface{})
	if !ok {
		t.Fatal("Expected map output")
	}
	if status["balance_minutes"] != -51 {
		t.Errorf("balance_minutes = %v, want -51", status["balance_minutes"])
	}
	if status["today"] != "drink" {
		t.Errorf("today = %v, want drink", status["today"])
	}
}

func TestHandleGetGrade(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	c := models.NewCheckIn(true)
	if err := db.CreateCheckIn(c); err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}

	_, output, err := server.handleGetGrade(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleStatusResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	e := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	result, err := server.handleStatusResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "payback://status" {
		t.Errorf("URI = %s, want payback://status", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !contains(result.Contents[0].Text, "balance_minutes") {
		t.Error("Expected balance_minutes in status resource")
	}
}

func TestHandleRecentResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	e := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	c := models.NewCheckIn(true)
	if err := db.CreateCheckIn(c); err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}

	result, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result.Contents[0].URI != "payback://recent" {
		t.Errorf("URI = %s, want payback://recent", result.Contents[0].URI)
	}
	if result.Contents[0].Text == "" {
		t.Error("Expected non-empty Text")
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	// Old entry should be excluded
	old := models.NewDebitEntry("Old Lager", 145, 34)
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	if err := db.CreateEntry(old); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	today := models.NewDebitEntry("Hazy IPA", 220, 51)
	if err := db.CreateEntry(today); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result.Contents[0].URI != "payback://today" {
		t.Errorf("URI = %s, want payback://today", result.Contents[0].URI)
	}

	text := result.Contents[0].Text
	if !contains(text, "Hazy IPA") {
		t.Error("Expected today's entry in result")
	}
	if contains(text, "Old Lager") {
		t.Error("Old entry should be filtered out")
	}
}

func TestHandleTodayResourceEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if !contains(result.Contents[0].Text, "none") {
		t.Error("Expected status none for an empty day")
	}
}

// Helper function.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsImpl(s, substr))
}

func containsImpl(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
