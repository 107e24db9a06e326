package youtube

import "testing"

func TestFormatISODuration(t *testing.T) {
	cases := map[string]string{
		"PT12M34S":  "12:34",
		"PT1H2M3S":  "1:02:03",
		"PT45S":     "0:45",
		"PT2H":      "2:00:00",
		"PT9M":      "9:00",
		"notaclock": "",
	}
	for iso, want := range cases {
		if got := formatISODuration(iso); got != want {
			t.Errorf("formatISODuration(%q) = %q, want %q", iso, got, want)
		}
	}
}
