package services

import "testing"

func TestBillingNumber(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"blank defaults", "", "01"},
		{"whitespace defaults", "   ", "01"},
		{"em-dash sentinel defaults", "—", "01"},
		{"bare digit", "3", "03"},
		{"two digits", "12", "12"},
		{"prefixed label", "PB-07", "07"},
		{"free text around digits", "Billing Cycle 4", "04"},
		{"no digits defaults", "final", "01"},
		{"zero defaults", "0", "01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BillingNumber(tt.label); got != tt.want {
				t.Errorf("BillingNumber(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestDocumentNumber(t *testing.T) {
	if got := DocumentNumber("PRJ-2024-017", "PB-03"); got != "PRJ-2024-017-PB-03" {
		t.Errorf("DocumentNumber = %q, want %q", got, "PRJ-2024-017-PB-03")
	}
	if got := DocumentNumber("PRJ-001", ""); got != "PRJ-001-PB-01" {
		t.Errorf("DocumentNumber with blank cycle = %q, want %q", got, "PRJ-001-PB-01")
	}
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		name      string
		projectNo string
		pbLabel   string
		want      string
	}{
		{"plain", "PRJ-001", "2", "PRJ-001-PB-02"},
		{"spaces replaced", "PRJ 001", "1", "PRJ-001-PB-01"},
		{"slashes replaced", "PRJ/2024/17", "5", "PRJ-2024-17-PB-05"},
		{"colons replaced", "PRJ:A", "", "PRJ-A-PB-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReportFileName(tt.projectNo, tt.pbLabel); got != tt.want {
				t.Errorf("ReportFileName(%q, %q) = %q, want %q", tt.projectNo, tt.pbLabel, got, tt.want)
			}
		})
	}
}
