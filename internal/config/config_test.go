package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := &Config{PDFDir: "/data/pdfs"}
	cfg.Grobid.URL = "http://grobid:8070"
	cfg.Similarity.Threshold = 0.3

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.PDFDir != "/data/pdfs" {
		t.Errorf("PDFDir = %q, want /data/pdfs", loaded.PDFDir)
	}
	if loaded.Grobid.URL != "http://grobid:8070" {
		t.Errorf("Grobid.URL = %q, want http://grobid:8070", loaded.Grobid.URL)
	}
	if loaded.Similarity.Threshold != 0.3 {
		t.Errorf("Similarity.Threshold = %v, want 0.3", loaded.Similarity.Threshold)
	}
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PDFDir != "" {
		t.Errorf("PDFDir = %q, want empty", cfg.PDFDir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{PDFDir: "/from/file"}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("CG_PDF_DIR", "/from/env")
	t.Setenv("CG_SIMILARITY_THRESHOLD", "0.42")

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.PDFDir != "/from/env" {
		t.Errorf("PDFDir = %q, env override should win", loaded.PDFDir)
	}
	if loaded.Similarity.Threshold != 0.42 {
		t.Errorf("Similarity.Threshold = %v, want 0.42", loaded.Similarity.Threshold)
	}
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(filepath.Join(root, CitegraphDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProject(nested)
	if err != nil {
		t.Fatalf("FindProject() error = %v", err)
	}
	resolved, _ := filepath.EvalSymlinks(root)
	foundResolved, _ := filepath.EvalSymlinks(found)
	if foundResolved != resolved {
		t.Errorf("FindProject() = %q, want %q", found, root)
	}
}

func TestFindProject_NotFound(t *testing.T) {
	if _, err := FindProject(t.TempDir()); err == nil {
		t.Error("FindProject() outside any project should fail")
	}
}

func TestGetSet(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("openalex.mailto", "team@example.org"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := cfg.Get("openalex.mailto")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "team@example.org" {
		t.Errorf("Get() = %q, want team@example.org", got)
	}

	if err := cfg.Set("similarity.threshold", "not-a-number"); err == nil {
		t.Error("Set() with a bad float should fail")
	}
	if err := cfg.Set("nope", "x"); err == nil {
		t.Error("Set() with an unknown key should fail")
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("Get() with an unknown key should fail")
	}
}
