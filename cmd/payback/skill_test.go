// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, directory creation, and file content.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestSkillInstallCreatesDirectory verifies that the skill directory is created
// when it doesn't exist.
func TestSkillInstallCreatesDirectory(t *testing.T) {
	tmpHome := t.TempDir()

	skillDir := filepath.Join(tmpHome, ".claude", "skills", "payback")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	// Read embedded skill content for verification
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	// Create directory and write skill file (simulating what installSkill does)
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}

	if err := os.WriteFile(skillPath, content, 0644); err != nil {
		t.Fatalf("Failed to write skill file: %v", err)
	}

	// Verify directory was created
	info, err := os.Stat(skillDir)
	if err != nil {
		t.Fatalf("Skill directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected skill path to be a directory")
	}

	// Verify file exists
	if _, err := os.Stat(skillPath); err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
}

// TestSkillContentMarkers verifies the embedded SKILL.md has the expected
// frontmatter and command examples.
func TestSkillContentMarkers(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	text := string(content)

	if !strings.HasPrefix(text, "---") {
		t.Error("Expected skill file to start with frontmatter")
	}
	for _, marker := range []string{"name: payback", "payback drink", "payback exercise", "payback checkin", "payback status"} {
		if !strings.Contains(text, marker) {
			t.Errorf("Expected skill content to contain %q", marker)
		}
	}
}
