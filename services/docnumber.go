package services

import (
	"fmt"
	"strconv"
	"strings"
)

// BillingNumber normalizes a free-text billing-cycle label into the two-digit
// sequence used in document numbers. Digits are extracted from the label and
// zero-padded; a blank label or the em-dash sentinel defaults to "01".
func BillingNumber(label string) string {
	label = strings.TrimSpace(label)
	if label == "" || label == "—" {
		return "01"
	}

	var digits strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil || n <= 0 {
		return "01"
	}
	return fmt.Sprintf("%02d", n)
}

// DocumentNumber constructs the progress report document identifier.
// Format: {projectNo}-PB-{two-digit billing number}
func DocumentNumber(projectNo, pbLabel string) string {
	return fmt.Sprintf("%s-PB-%s", projectNo, BillingNumber(pbLabel))
}

// ReportFileName derives the export filename (without extension) for a
// progress report. Unsafe filename characters in the project number are
// replaced first.
func ReportFileName(projectNo, pbLabel string) string {
	return DocumentNumber(sanitizeFilename(projectNo), pbLabel)
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
