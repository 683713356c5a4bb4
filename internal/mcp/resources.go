// ABOUTME: MCP resource implementations for the payback ledger.
// ABOUTME: Provides payback://status, payback://recent, and payback://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// payback://status - Balance, streak, and grade dashboard
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "payback://status",
		Name:        "Payback Status",
		Description: "Running balance, today's classification, streak, and 28-day grade",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	// payback://recent - Last 10 entries and 5 check-ins
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "payback://recent",
		Name:        "Recent Ledger Entries",
		Description: "Last 10 ledger entries and 5 check-ins",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// payback://today - Everything recorded today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "payback://today",
		Name:        "Today's Ledger",
		Description: "All entries and the check-in recorded today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleStatusResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	now := time.Now()
	streak := engine.Streak(now, entries, checkins)
	grade := engine.Grade(now, entries, checkins)

	result := map[string]interface{}{
		"generated_at":    now.Format(time.RFC3339),
		"balance_minutes": engine.Balance(entries),
		"today":           engine.ClassifyDay(now, entries, checkins).String(),
		"streak_days":     streak,
		"multiplier":      engine.MultiplierFor(streak),
		"grade": map[string]interface{}{
			"tier":    grade.Tier,
			"label":   grade.Label,
			"current": grade.Current,
			"rookie":  grade.IsRookie,
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "payback://status",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListEntries(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	checkins, err := s.repo.ListCheckIns(5)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	result := map[string]interface{}{
		"entries":  entries,
		"checkins": checkins,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "payback://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	entries, err := s.repo.ListEntriesBetween(todayStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	checkin, err := s.repo.FindCheckInOn(now)
	if err != nil {
		return nil, fmt.Errorf("failed to look up checkin: %w", err)
	}

	var dayBalance int
	for _, e := range entries {
		dayBalance += e.Minutes
	}

	allEntries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	var checkins []*models.CheckIn
	if checkin != nil {
		checkins = append(checkins, checkin)
	}

	result := map[string]interface{}{
		"date":        todayStart.Format("2006-01-02"),
		"status":      engine.ClassifyDay(now, allEntries, checkins).String(),
		"entries":     entries,
		"checkin":     checkin,
		"day_balance": dayBalance,
		"counts": map[string]int{
			"entries": len(entries),
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "payback://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
