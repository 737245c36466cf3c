package services

import (
	"testing"

	"github.com/yungbote/codetrack-backend/internal/types"
)

func TestCronSpec(t *testing.T) {
	cases := []struct {
		name      string
		frequency string
		syncTime  string
		want      string
		wantErr   bool
	}{
		{name: "daily", frequency: "daily", syncTime: "02:00", want: "0 0 2 * * *"},
		{name: "daily_late_evening", frequency: "daily", syncTime: "23:45", want: "0 45 23 * * *"},
		{name: "hourly_uses_minute_only", frequency: "hourly", syncTime: "02:30", want: "0 30 * * * *"},
		{name: "weekly_lands_on_monday", frequency: "weekly", syncTime: "06:15", want: "0 15 6 * * 1"},
		{name: "unknown_frequency", frequency: "fortnightly", syncTime: "02:00", wantErr: true},
		{name: "bad_time", frequency: "daily", syncTime: "2am", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := &types.AppSettings{SyncFrequency: tc.frequency, SyncTime: tc.syncTime}
			got, err := cronSpec(settings)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got spec %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("cronSpec: %v", err)
			}
			if got != tc.want {
				t.Errorf("cronSpec = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseSyncTime(t *testing.T) {
	cases := []struct {
		raw       string
		hour, min int
		wantErr   bool
	}{
		{raw: "02:00", hour: 2, min: 0},
		{raw: "23:59", hour: 23, min: 59},
		{raw: "0:5", hour: 0, min: 5},
		{raw: " 08:30 ", hour: 8, min: 30},
		{raw: "24:00", wantErr: true},
		{raw: "12:60", wantErr: true},
		{raw: "noon", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			hour, minute, err := parseSyncTime(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d:%d", hour, minute)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSyncTime(%q): %v", tc.raw, err)
			}
			if hour != tc.hour || minute != tc.min {
				t.Errorf("parseSyncTime(%q) = %d:%d, want %d:%d", tc.raw, hour, minute, tc.hour, tc.min)
			}
		})
	}
}
