package utils

import (
	"strings"
	"testing"
)

func TestNewVisualizer(t *testing.T) {
	v := NewVisualizer()
	if v == nil {
		t.Fatal("NewVisualizer returned nil")
	}
	if v.steps == nil {
		t.Fatal("Visualizer steps slice is nil")
	}
	if len(v.steps) != 0 {
		t.Fatal("New visualizer should have empty steps")
	}
}

func TestAddStep(t *testing.T) {
	v := NewVisualizer()

	testCases := []struct {
		step     string
		expected string
	}{
		{"Note: This is a note", "\033[2m"},
		{"Platform Information:", "\033[1m"},
		{"   • Time: 1 op in 1ms", "\033[95m"},
		{"• shift-brute is 10.0% slower than vigenere", "\033[95m"},
		{"Regular step", ""},
	}

	for _, tc := range testCases {
		v.AddStep(tc.step)
		lastStep := v.steps[len(v.steps)-1]
		if tc.expected != "" && !strings.Contains(lastStep, tc.expected) {
			t.Errorf("Step '%s' was not formatted with expected style '%s'", tc.step, tc.expected)
		}
	}
}

func TestAddSeparator(t *testing.T) {
	v := NewVisualizer()
	v.AddSeparator()

	lastStep := v.steps[len(v.steps)-1]
	if !strings.Contains(lastStep, "----------------------------------------") {
		t.Error("Separator step does not contain separator line")
	}
}

func TestAddNote(t *testing.T) {
	v := NewVisualizer()
	v.AddNote("Test note")

	lastStep := v.steps[len(v.steps)-1]
	if !strings.Contains(lastStep, "Note: Test note") {
		t.Error("Note step does not contain note text")
	}
}

func TestGetSteps(t *testing.T) {
	v := NewVisualizer()
	v.AddStep("Step 1")
	v.AddStep("Step 2")

	steps := v.GetSteps()
	if len(steps) != 2 {
		t.Errorf("GetSteps returned %d steps, expected 2", len(steps))
	}
	if steps[0] != v.steps[0] || steps[1] != v.steps[1] {
		t.Error("GetSteps returned incorrect steps")
	}
}
