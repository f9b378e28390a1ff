package backup

import (
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		sheet    string
		expected string
	}{
		{"Project Plan", "Project_Plan.2024-01-15-103000.json"},
		{"Budget", "Budget.2024-01-15-103000.json"},
		{"  Q1   Sales\tForecast ", "Q1_Sales_Forecast.2024-01-15-103000.json"},
		{"Q1/Q2 Plan", "Q1_Q2_Plan.2024-01-15-103000.json"},
		{`Q1\Q2 Plan`, "Q1_Q2_Plan.2024-01-15-103000.json"},
		{"../../etc/cron.d/plan", ".._.._etc_cron.d_plan.2024-01-15-103000.json"},
	}

	timestamp := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.Local)

	for _, test := range tests {
		if file := Filename(test.sheet, timestamp); file != test.expected {
			t.Errorf("Incorrect file name for '%v' - expected:%v, got:%v", test.sheet, test.expected, file)
		}
	}
}

func TestLogFilename(t *testing.T) {
	tests := map[string]string{
		"/var/backup/Project_Plan.2024-01-15-103000.json": "/var/backup/Project_Plan.2024-01-15-103000.log",
		"/var/backup/plan.json":                           "/var/backup/plan.log",
		"/var/backup/plan":                                "/var/backup/plan.log",
		"/var/backup/plan.log":                            "/var/backup/plan.log.log",
	}

	for path, expected := range tests {
		if file := LogFilename(path); file != expected {
			t.Errorf("Incorrect log file name for '%v' - expected:%v, got:%v", path, expected, file)
		}
	}
}

func TestBackedUpFormat(t *testing.T) {
	timestamp := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.Local)
	expected := "Mon, 15 Jan 2024 10:30:00"

	if s := timestamp.Format(BackedUpFormat); s != expected {
		t.Errorf("Incorrect 'backed up' timestamp - expected:%v, got:%v", expected, s)
	}
}
