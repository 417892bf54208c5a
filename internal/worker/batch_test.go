package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/asterion-dev/asterion/internal/model"
)

type stubInterpreter struct {
	failFor map[string]bool
}

func (s *stubInterpreter) Interpret(_ context.Context, birth model.BirthInput, mode model.OutputMode) (*model.Interpretation, error) {
	if s.failFor[birth.Name] {
		return nil, errors.New("interpretation failed")
	}
	return &model.Interpretation{Mode: mode, Summary: "ok: " + birth.Name}, nil
}

func TestProcessBirths(t *testing.T) {
	proc := NewBatchProcessor(&stubInterpreter{}, 4)
	births := []model.BirthInput{
		{Name: "a", Date: "1990-01-01", Lat: 10, Lon: 20},
		{Name: "b", Date: "1991-02-02", Lat: 30, Lon: 40},
		{Name: "c", Date: "1992-03-03", Lat: 50, Lon: 60},
	}

	results := proc.ProcessBirths(context.Background(), births, model.ModeNatal)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error %v", r.Birth.Name, r.Error)
		}
		if r.Interpretation == nil || r.Interpretation.Mode != model.ModeNatal {
			t.Errorf("%s: missing or wrong interpretation", r.Birth.Name)
		}
	}
}

func TestProcessBirthsCollectsFailures(t *testing.T) {
	proc := NewBatchProcessor(&stubInterpreter{failFor: map[string]bool{"bad": true}}, 2)
	births := []model.BirthInput{
		{Name: "good", Date: "1990-01-01"},
		{Name: "bad", Date: "1990-01-01"},
	}

	results := proc.ProcessBirths(context.Background(), births, model.ModeTiming)
	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			if r.Birth.Name != "bad" {
				t.Errorf("wrong birth failed: %s", r.Birth.Name)
			}
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
}

func TestProcessBirthsEmpty(t *testing.T) {
	proc := NewBatchProcessor(&stubInterpreter{}, 2)
	results := proc.ProcessBirths(context.Background(), nil, model.ModeNatal)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestReadBirthsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "births.yaml")
	content := `- name: Alice
  date: "1990-06-15"
  time: "14:30"
  lat: 40.71
  lon: -74.0
- name: Bob
  date: "1985-12-01"
  lat: 51.5
  lon: -0.12
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	births, err := ReadBirthsFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(births) != 2 {
		t.Fatalf("got %d births, want 2", len(births))
	}
	if births[0].Name != "Alice" || births[0].Time != "14:30" {
		t.Errorf("first entry = %+v", births[0])
	}
}

func TestReadBirthsFromFileValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "births.yaml")
	content := `- name: Broken
  date: "1990-06-15"
  lat: 400
  lon: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBirthsFromFile(path); err == nil {
		t.Error("out-of-range latitude should fail validation")
	}
}
