package services

import "testing"

func TestDash(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "—"},
		{"whitespace only", "   ", "—"},
		{"value passes through", "PB-03", "PB-03"},
		{"existing dash passes through", "—", "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dash(tt.input); got != tt.want {
				t.Errorf("Dash(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 75, "75%"},
		{"zero", 0, "0%"},
		{"fractional", 66.666666, "66.67%"},
		{"hundred", 100, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPercent(tt.input); got != tt.want {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatWeight(t *testing.T) {
	if got := FormatWeight(40); got != "40" {
		t.Errorf("FormatWeight(40) = %q, want %q", got, "40")
	}
	if got := FormatWeight(12.5); got != "12.50" {
		t.Errorf("FormatWeight(12.5) = %q, want %q", got, "12.50")
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{"top level", 0, "Civil Works"},
		{"one level", 1, "  Civil Works"},
		{"two levels", 2, "    Civil Works"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Indent("Civil Works", tt.level); got != tt.want {
				t.Errorf("Indent(level=%d) = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}
