package hours

import (
	"errors"
	"testing"

	"github.com/octobees/recycling-finder/internal/entity"
)

func TestCleanTimeToken(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"9:00 AM", "9:00 AM"},
		{"9:00AM", "9:00 AM"},
		{"9:00AM AM", "9:00 AM"},
		{"5:30PM PM", "5:30 PM"},
		{"5:30 PM AM", "5:30 PM"},
		{"  7:15   AM ", "7:15 AM"},
		{"13:00", "13:00"},
	}

	for _, tc := range cases {
		if got := CleanTimeToken(tc.input); got != tc.want {
			t.Fatalf("CleanTimeToken(%q)=%q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestConvertTime(t *testing.T) {
	cases := []struct {
		input string
		want  entity.TimeOfDay
	}{
		{"9:00 AM", entity.TimeOfDay{Hour: 9}},
		{"1:00 PM", entity.TimeOfDay{Hour: 13}},
		{"12:00 PM", entity.TimeOfDay{Hour: 12}},
		{"12:00 AM", entity.TimeOfDay{Hour: 0}},
		{"9:00AM AM", entity.TimeOfDay{Hour: 9}},
		{"11:30", entity.TimeOfDay{Hour: 11, Minute: 30}},
		{"5:45 PM", entity.TimeOfDay{Hour: 17, Minute: 45}},
	}

	for _, tc := range cases {
		got, err := ConvertTime(tc.input)
		if err != nil {
			t.Fatalf("ConvertTime(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ConvertTime(%q)=%s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestConvertTime_Canonical24HourLiteral(t *testing.T) {
	got, err := ConvertTime("9:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "09:00:00" {
		t.Fatalf("expected 09:00:00, got %s", got)
	}
}

func TestConvertTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00", "13:00 PM", "9 o'clock"} {
		_, err := ConvertTime(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		var parseErr *TimeParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected TimeParseError for %q, got %T", input, err)
		}
	}
}

// A token already in canonical "H:MM AM/PM" form must survive cleaning
// untouched, so converting it twice cannot drift.
func TestCleanTimeToken_FixedPoint(t *testing.T) {
	for _, token := range []string{"9:00 AM", "12:30 PM", "1:05 AM"} {
		once := CleanTimeToken(token)
		if once != token {
			t.Fatalf("CleanTimeToken(%q)=%q, expected fixed point", token, once)
		}
		if twice := CleanTimeToken(once); twice != once {
			t.Fatalf("CleanTimeToken not idempotent for %q: %q then %q", token, once, twice)
		}
	}
}
