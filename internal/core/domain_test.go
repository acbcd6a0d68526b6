package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-13")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 13 {
		t.Fatalf("got %s", d)
	}
	if _, err := ParseDate("13/03/2024"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestDateWithin(t *testing.T) {
	start, end := NewDate(2024, 3, 10), NewDate(2024, 3, 16)
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2024, 3, 10), true},
		{NewDate(2024, 3, 16), true},
		{NewDate(2024, 3, 13), true},
		{NewDate(2024, 3, 9), false},
		{NewDate(2024, 3, 17), false},
	}
	for _, tc := range cases {
		if got := tc.d.Within(start, end); got != tc.want {
			t.Fatalf("Within(%s) = %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestMilliunitsUnits(t *testing.T) {
	cases := []struct {
		m    Milliunits
		want float64
	}{
		{50000, 50.0},
		{-12500, -12.5},
		{0, 0.0},
		{31500, 31.5},
	}
	for _, tc := range cases {
		if got := tc.m.Units(); got != tc.want {
			t.Fatalf("Units(%d) = %v, want %v", tc.m, got, tc.want)
		}
	}
}

func TestWatchListJSONKeepsOrder(t *testing.T) {
	raw := `{"Essentials":"#dfe7f5","Fun":"#f4dccb","Savings":"#ddeedd"}`

	var wl WatchList
	if err := json.Unmarshal([]byte(raw), &wl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	wantGroups := []string{"Essentials", "Fun", "Savings"}
	got := wl.Groups()
	if len(got) != len(wantGroups) {
		t.Fatalf("got %d groups, want %d", len(got), len(wantGroups))
	}
	for i, g := range wantGroups {
		if got[i] != g {
			t.Fatalf("group[%d] = %q, want %q", i, got[i], g)
		}
	}

	if color, ok := wl.Color("Fun"); !ok || color != "#f4dccb" {
		t.Fatalf("Color(Fun) = %q, %v", color, ok)
	}
	if _, ok := wl.Color("Nonexistent"); ok {
		t.Fatal("Color should miss unknown group")
	}

	out, err := json.Marshal(wl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("round trip changed order or content:\n got %s\nwant %s", out, raw)
	}
}

func TestWatchListUnmarshalRejectsNonObject(t *testing.T) {
	var wl WatchList
	if err := json.Unmarshal([]byte(`["Essentials"]`), &wl); err == nil {
		t.Fatal("expected error for JSON array")
	}
}
