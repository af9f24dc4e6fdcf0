package client

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestAge(t *testing.T) {
	today := date(2024, time.June, 1)

	tests := []struct {
		name      string
		birthDate *time.Time
		want      *int
	}{
		{
			name:      "no_birth_date",
			birthDate: nil,
			want:      nil,
		},
		{
			name:      "birthday_already_passed",
			birthDate: datePtr(1938, time.March, 10),
			want:      intPtr(86),
		},
		{
			name:      "birthday_not_yet_reached",
			birthDate: datePtr(1938, time.November, 3),
			want:      intPtr(85),
		},
		{
			name:      "birthday_today",
			birthDate: datePtr(1990, time.June, 1),
			want:      intPtr(34),
		},
		{
			name:      "day_before_birthday",
			birthDate: datePtr(1990, time.June, 2),
			want:      intPtr(33),
		},
		{
			name:      "same_month_earlier_day",
			birthDate: datePtr(2000, time.June, 15),
			want:      intPtr(23),
		},
		{
			name:      "born_this_year",
			birthDate: datePtr(2024, time.January, 2),
			want:      intPtr(0),
		},
		{
			name:      "birth_date_in_future",
			birthDate: datePtr(2025, time.January, 1),
			want:      nil,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			c := Client{BirthDate: tt.birthDate}

			got := c.Age(today)

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Age() = %v, want %v", got, tt.want)
			}

			if got != nil && *got != *tt.want {
				t.Fatalf("Age() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intPtr(n int) *int {
	return &n
}

func TestParseCareLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "1", want: intPtr(1)},
		{in: "5", want: intPtr(5)},
		{in: "0", wantErr: true},
		{in: "6", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCareLevel(tt.in)

		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCareLevel(%q) expected error, got %v", tt.in, got)
			}
			continue
		}

		if err != nil {
			t.Fatalf("ParseCareLevel(%q) unexpected error: %v", tt.in, err)
		}

		if (got == nil) != (tt.want == nil) {
			t.Fatalf("ParseCareLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}

		if got != nil && *got != *tt.want {
			t.Fatalf("ParseCareLevel(%q) = %d, want %d", tt.in, *got, *tt.want)
		}
	}
}

func TestParseBirthDate(t *testing.T) {
	got, err := ParseBirthDate("1938-11-03")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil || !got.Equal(date(1938, time.November, 3)) {
		t.Fatalf("ParseBirthDate = %v", got)
	}

	got, err = ParseBirthDate("")

	if err != nil || got != nil {
		t.Fatalf("empty input should mean no birth date, got %v, %v", got, err)
	}

	if _, err = ParseBirthDate("03.11.1938"); err == nil {
		t.Fatal("expected error for wrong format")
	}
}

func TestNewFromCreateRequestCoercion(t *testing.T) {
	c, err := NewFromCreateRequest(CreateClientRequest{
		Name:      "Anna Kramer",
		BirthDate: "1950-02-28",
		CareLevel: "3",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID == "" {
		t.Fatal("expected generated id")
	}

	if c.CareLevel == nil || *c.CareLevel != 3 {
		t.Fatalf("care level = %v, want 3", c.CareLevel)
	}

	if c.BirthDate == nil {
		t.Fatal("expected birth date")
	}

	// absent optional fields stay absent, never zero
	c, err = NewFromCreateRequest(CreateClientRequest{Name: "Ohne Alles"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.CareLevel != nil || c.BirthDate != nil {
		t.Fatalf("expected nil optionals, got careLevel=%v birthDate=%v", c.CareLevel, c.BirthDate)
	}
}
