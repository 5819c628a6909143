package risk

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigFromYAML_PartialOverride(t *testing.T) {
	doc := []byte(`
hrv:
  severe_threshold: -2.0
  severe_points: 30
acwr:
  critical_threshold: 1.6
`)
	cfg, err := ConfigFromYAML(doc)
	if err != nil {
		t.Fatalf("ConfigFromYAML: %v", err)
	}

	if cfg.HRV.SevereThreshold != -2.0 || cfg.HRV.SeverePoints != 30 {
		t.Fatalf("overridden hrv fields not applied: %+v", cfg.HRV)
	}
	// Unspecified fields inside an overridden section keep their defaults.
	if cfg.HRV.ModerateThreshold != -1.0 || cfg.HRV.MildPoints != 8 {
		t.Fatalf("untouched hrv fields changed: %+v", cfg.HRV)
	}
	if cfg.ACWR.CriticalThreshold != 1.6 {
		t.Fatalf("acwr critical threshold = %v, want 1.6", cfg.ACWR.CriticalThreshold)
	}
	// Sections absent from the document stay at defaults entirely.
	if !reflect.DeepEqual(cfg.Pain, DefaultScoringConfig().Pain) {
		t.Fatalf("pain section must stay default: %+v", cfg.Pain)
	}
}

func TestConfigFromYAML_EmptyDocumentIsDefaults(t *testing.T) {
	cfg, err := ConfigFromYAML([]byte(""))
	if err != nil {
		t.Fatalf("ConfigFromYAML: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultScoringConfig()) {
		t.Fatalf("empty document must yield the defaults")
	}
}

func TestConfigFromYAML_RejectsMalformed(t *testing.T) {
	if _, err := ConfigFromYAML([]byte("hrv: [not, a, mapping]")); err == nil {
		t.Fatalf("expected error for malformed section")
	}
}

func TestToMap_RoundTrip(t *testing.T) {
	original := DefaultScoringConfig()
	original.HRV.SeverePoints = 30
	original.SafetyRules.R0PainThreshold = 8

	data, err := yaml.Marshal(original.ToMap())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored, err := ConfigFromYAML(data)
	if err != nil {
		t.Fatalf("ConfigFromYAML: %v", err)
	}
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("round trip changed the configuration:\n%+v\n%+v", original, restored)
	}
}

func TestLoadCurrentConfigFromFile(t *testing.T) {
	t.Cleanup(func() { SetCurrentConfig(DefaultScoringConfig()) })

	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("readiness:\n  poor_points: 20\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadCurrentConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadCurrentConfigFromFile: %v", err)
	}
	if cfg.Readiness.PoorPoints != 20 {
		t.Fatalf("poor points = %d, want 20", cfg.Readiness.PoorPoints)
	}
	if CurrentConfig().Readiness.PoorPoints != 20 {
		t.Fatalf("loaded config must become the process-wide config")
	}

	// A bad path leaves the previous configuration in effect.
	if _, err := LoadCurrentConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if CurrentConfig().Readiness.PoorPoints != 20 {
		t.Fatalf("failed load must not replace the config")
	}
}
