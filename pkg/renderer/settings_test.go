package renderer

import (
	"errors"
	"runtime"
	"testing"
)

func TestSettings_ImageHeight(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{400, 16.0 / 9.0, 225},
		{64, 16.0 / 9.0, 36},
		{100, 3.0, 33}, // truncated, not rounded
		{10, 1.0, 10},
		{1, 2.0, 0},
	}

	for _, tt := range tests {
		s := Settings{ImageWidth: tt.width, AspectRatio: tt.aspect}
		if got := s.ImageHeight(); got != tt.expected {
			t.Errorf("ImageHeight(%d, %g) = %d, want %d", tt.width, tt.aspect, got, tt.expected)
		}
	}
}

func TestSettings_Validate(t *testing.T) {
	valid := DefaultSettings()

	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"zero depth", func(s *Settings) { s.MaxDepth = 0 }, false},
		{"zero workers means all CPUs", func(s *Settings) { s.NumWorkers = 0 }, false},
		{"zero width", func(s *Settings) { s.ImageWidth = 0 }, true},
		{"negative aspect", func(s *Settings) { s.AspectRatio = -1 }, true},
		{"zero aspect", func(s *Settings) { s.AspectRatio = 0 }, true},
		{"empty height", func(s *Settings) { s.ImageWidth = 1; s.AspectRatio = 2 }, true},
		{"zero samples", func(s *Settings) { s.SamplesPerPixel = 0 }, true},
		{"negative depth", func(s *Settings) { s.MaxDepth = -1 }, true},
		{"negative workers", func(s *Settings) { s.NumWorkers = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSettings_Workers(t *testing.T) {
	if got := (Settings{NumWorkers: 3}).Workers(); got != 3 {
		t.Errorf("Expected 3 workers, got %d", got)
	}
	if got := (Settings{}).Workers(); got != runtime.NumCPU() {
		t.Errorf("Expected NumCPU workers, got %d", got)
	}
}
