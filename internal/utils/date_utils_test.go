package utils

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateDateRange(t *testing.T) {
	from := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	got := GenerateDateRange(from, to)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("intervalo: %v", got)
	}
}

func TestGenerateDateRangeSingleDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	got := GenerateDateRange(day, day)
	if !reflect.DeepEqual(got, []string{"2024-03-15"}) {
		t.Fatalf("dia único: %v", got)
	}
}

func TestGenerateDateRangeInverted(t *testing.T) {
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := GenerateDateRange(from, to); len(got) != 0 {
		t.Fatalf("intervalo invertido deveria ser vazio: %v", got)
	}
}

func TestGenerateDateRangeZero(t *testing.T) {
	if got := GenerateDateRange(time.Time{}, time.Now()); len(got) != 0 {
		t.Fatalf("data zero deveria ser vazio: %v", got)
	}
}

func TestBrasilClockLocation(t *testing.T) {
	now := BrasilClock{}.Now()
	_, offset := now.Zone()
	if offset != -3*60*60 {
		t.Fatalf("offset do fuso: %d", offset)
	}
}
