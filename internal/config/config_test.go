// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Threshold != 85 {
		t.Errorf("expected default threshold=85, got %d", cfg.Defaults.Threshold)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Workbook.SourceSheet != "2025_LIST" || cfg.Workbook.TargetSheet != "2002_LIST" {
		t.Errorf("unexpected default sheets: %q/%q", cfg.Workbook.SourceSheet, cfg.Workbook.TargetSheet)
	}
	if cfg.GetProfile("strict") == nil {
		t.Error("expected built-in strict profile")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  threshold: 90
  format: json
  workers: 4
workbook:
  source_sheet: NEW_LIST
  target_sheet: OLD_LIST
  english_column: Name
  vernacular_column: Name (Telugu)
profiles:
  review:
    threshold: 95
    format: xlsx
    description: Manual review export
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Threshold != 90 {
		t.Errorf("expected threshold=90, got %d", cfg.Defaults.Threshold)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Workbook.SourceSheet != "NEW_LIST" {
		t.Errorf("expected source_sheet=NEW_LIST, got %q", cfg.Workbook.SourceSheet)
	}

	profile := cfg.GetProfile("review")
	if profile == nil {
		t.Fatal("expected review profile")
	}
	if profile.Threshold == nil || *profile.Threshold != 95 {
		t.Errorf("expected profile threshold=95, got %v", profile.Threshold)
	}
	if profile.Format != "xlsx" {
		t.Errorf("expected profile format=xlsx, got %q", profile.Format)
	}
}

func TestLoadConfig_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  threshold: 150
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected validation error for threshold 150")
	}
}

func TestLoadConfig_InvalidProfileThreshold(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
profiles:
  bad:
    threshold: -5
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected validation error for profile threshold -5")
	}
}

func TestLoadConfig_MissingWorkbookColumns(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
workbook:
  source_sheet: A
  target_sheet: B
  english_column: ""
  vernacular_column: ""
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected validation error for empty workbook columns")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
	if cfg.Defaults.Threshold != 85 {
		t.Errorf("expected default threshold after fallback, got %d", cfg.Defaults.Threshold)
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestConfig_LoadOptions(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := cfg.LoadOptions()
	if opts.SourceSheet != cfg.Workbook.SourceSheet {
		t.Errorf("LoadOptions source sheet %q does not match config %q", opts.SourceSheet, cfg.Workbook.SourceSheet)
	}
	if opts.EnglishColumn != cfg.Workbook.EnglishColumn {
		t.Errorf("LoadOptions english column %q does not match config %q", opts.EnglishColumn, cfg.Workbook.EnglishColumn)
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
