package project

import (
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	start := time.Date(2024, 1, 1, 15, 30, 0, 0, time.FixedZone("X", 3600))
	p, err := New("p1", Attrs{Title: "Soil carbon", StartDate: &start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "p1" || p.Title() != "Soil carbon" {
		t.Errorf("unexpected project: %+v", p)
	}
	if p.Status() != StatusPlanning {
		t.Errorf("default status = %q, want %q", p.Status(), StatusPlanning)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.StartDate().Equal(want) {
		t.Errorf("start date = %v, want %v", p.StartDate(), want)
	}
	if p.EndDate() != nil {
		t.Errorf("end date = %v, want nil", p.EndDate())
	}
}

func TestNew_EndBeforeStart(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := New("p1", Attrs{Title: "t", StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.StartDate().Equal(start) || !p.EndDate().Equal(end) {
		t.Errorf("dates = %v..%v, want %v..%v", p.StartDate(), p.EndDate(), start, end)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		attrs Attrs
	}{
		{"empty id", "", Attrs{Title: "t"}},
		{"blank title", "p1", Attrs{Title: "  "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.attrs); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	p := Reconstruct("p1", Attrs{})
	if p.ID() != "p1" || p.Title() != "" {
		t.Errorf("unexpected project: %+v", p)
	}
}
