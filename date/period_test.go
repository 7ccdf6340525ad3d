package date

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "canonical", input: "2024/08", want: New(2024, time.August, 1)},
		{name: "single digit month", input: "2024/8", want: New(2024, time.August, 1)},
		{name: "dash", input: "2024-12", want: New(2024, time.December, 1)},
		{name: "month 13", input: "2024/13", wantErr: true},
		{name: "month 0", input: "2024/00", wantErr: true},
		{name: "full date", input: "2024/08/01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePeriod(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestPeriodString(t *testing.T) {
	if got := New(2024, time.August, 1).Period(); got != "2024/08" {
		t.Errorf("Period() = %q, want %q", got, "2024/08")
	}
}

func TestParseMonthColumn(t *testing.T) {
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2024年08月度", want: New(2024, time.August, 1)},
		{input: "2024年8月度", want: New(2024, time.August, 1)},
		{input: "2025年01月", want: New(2025, time.January, 1)},
		{input: "前残", wantErr: true},
		{input: "合計", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseMonthColumn(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMonthColumn(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseMonthColumn(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
