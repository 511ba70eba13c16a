package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSources(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write sources: %v", err)
	}
	return path
}

func TestLoadSourcesValid(t *testing.T) {
	path := writeSources(t, `
sources:
  - name: coinafrique
    schema: generic
    start_url: https://sn.coinafrique.com/categorie/immobilier
    max_pages: 3
    enabled: true
  - name: loger-dakar
    schema: loger_dakar
    start_url: https://www.loger-dakar.com/Bien/
    max_pages: 2
    enabled: false
`)

	s, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(s.Sources) != 2 {
		t.Fatalf("sources: got %d, want 2", len(s.Sources))
	}

	enabled := s.Enabled()
	if len(enabled) != 1 || enabled[0].Name != "coinafrique" {
		t.Errorf("enabled: got %v, want only coinafrique", enabled)
	}
}

func TestLoadSourcesValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty registry", "sources: []\n", ErrNoSources},
		{"missing start_url", `
sources:
  - name: coinafrique
    schema: generic
    max_pages: 3
    enabled: true
`, ErrMissingStartURL},
		{"unknown schema", `
sources:
  - name: mubawab
    schema: mubawab
    start_url: https://www.mubawab.sn
    max_pages: 1
    enabled: true
`, ErrUnknownSchema},
		{"zero max_pages", `
sources:
  - name: coinafrique
    schema: generic
    start_url: https://sn.coinafrique.com
    enabled: true
`, ErrInvalidMaxPages},
		{"nothing enabled", `
sources:
  - name: coinafrique
    schema: generic
    start_url: https://sn.coinafrique.com
    max_pages: 3
    enabled: false
`, ErrNoEnabledSources},
	}

	for _, tt := range tests {
		path := writeSources(t, tt.yaml)
		_, err := LoadSources(path)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
