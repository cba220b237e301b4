package clock

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"19:00:00", 1140, false},
		{"13:45:30", 825, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"12:00:00:00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"12.30", 0, true},
		{"-1:00", 0, true},
		{"12:99:00", 0, true},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ToMinutes(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToMinutes(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestEndToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"20:45:00", 1245, false},
		{"24:00", 1440, false},
		{"24:44:00", 1484, false}, // latest seating, 22:59 + 105min
		{"24:60", 0, true},
		{"25:00", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := EndToMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("EndToMinutes(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("EndToMinutes(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("EndToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		in    string
		delta int
		want  string
	}{
		{"12:00", 105, "13:45:00"},
		{"19:00:00", 105, "20:45:00"},
		{"22:59", 105, "24:44:00"}, // past midnight is not wrapped
		{"08:00", 0, "08:00:00"},
	}
	for _, tc := range cases {
		got, err := AddMinutes(tc.in, tc.delta)
		if err != nil {
			t.Fatalf("AddMinutes(%q, %d): %v", tc.in, tc.delta, err)
		}
		if got != tc.want {
			t.Errorf("AddMinutes(%q, %d) = %q, want %q", tc.in, tc.delta, got, tc.want)
		}
	}
	if _, err := AddMinutes("25:00", 10); err == nil {
		t.Error("AddMinutes with invalid time should fail")
	}
}

func TestIntervalsOverlap(t *testing.T) {
	mins := func(s string) int {
		m, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("bad fixture time %q: %v", s, err)
		}
		return m
	}
	cases := []struct {
		name                   string
		aStart, aEnd, bStart, bEnd string
		want                   bool
	}{
		{"identical", "12:00", "13:45", "12:00", "13:45", true},
		{"contained", "12:00", "13:45", "13:00", "13:30", true},
		{"partial overlap", "12:00", "13:45", "13:00", "14:00", true},
		{"back-to-back after", "12:00", "13:45", "13:45", "15:30", false},
		{"back-to-back before", "13:45", "15:30", "12:00", "13:45", false},
		{"disjoint", "08:00", "09:45", "19:00", "20:45", false},
		{"one minute overlap", "12:00", "13:45", "13:44", "15:00", true},
	}
	for _, tc := range cases {
		got := IntervalsOverlap(mins(tc.aStart), mins(tc.aEnd), mins(tc.bStart), mins(tc.bEnd))
		if got != tc.want {
			t.Errorf("%s: IntervalsOverlap = %v, want %v", tc.name, got, tc.want)
		}
		// overlap is symmetric
		if rev := IntervalsOverlap(mins(tc.bStart), mins(tc.bEnd), mins(tc.aStart), mins(tc.aEnd)); rev != got {
			t.Errorf("%s: overlap not symmetric", tc.name)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	if got := FromMinutes(1245); got != "20:45:00" {
		t.Errorf("FromMinutes(1245) = %q, want 20:45:00", got)
	}
	if got := FromMinutes(0); got != "00:00:00" {
		t.Errorf("FromMinutes(0) = %q, want 00:00:00", got)
	}
}
