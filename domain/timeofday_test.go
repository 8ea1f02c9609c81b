package domain

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	t.Run("should parse a valid time", func(t *testing.T) {
		got, err := ParseTimeOfDay("09:30:00")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		want := TimeOfDay{Hour: 9, Minute: 30}
		if got != want {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, value := range []string{"", "9:30", "25:00:00", "09:61:00", "noon"} {
			if _, err := ParseTimeOfDay(value); err == nil {
				t.Fatalf("wanted error for %q\ngot: nil", value)
			}
		}
	})

	t.Run("should round trip through String", func(t *testing.T) {
		parsed, err := ParseTimeOfDay("23:59:59")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if got := parsed.String(); got != "23:59:59" {
			t.Fatalf("\nwanted:\n23:59:59\ngot:\n%s", got)
		}
	})
}

func TestTimeOfDay_Before(t *testing.T) {
	morning := TimeOfDay{Hour: 8}
	evening := TimeOfDay{Hour: 20, Minute: 30}

	if !morning.Before(evening) {
		t.Fatalf("wanted %s to be before %s", morning, evening)
	}

	if evening.Before(morning) {
		t.Fatalf("wanted %s to not be before %s", evening, morning)
	}

	if morning.Before(morning) {
		t.Fatalf("wanted a time to not be before itself")
	}
}

func TestEqualTimes(t *testing.T) {
	nine := &TimeOfDay{Hour: 9}
	alsoNine := &TimeOfDay{Hour: 9}
	ten := &TimeOfDay{Hour: 10}

	if !EqualTimes(nil, nil) {
		t.Fatalf("wanted nil times to be equal")
	}

	if EqualTimes(nine, nil) || EqualTimes(nil, nine) {
		t.Fatalf("wanted nil and non-nil to differ")
	}

	if !EqualTimes(nine, alsoNine) {
		t.Fatalf("wanted equal values to be equal across pointers")
	}

	if EqualTimes(nine, ten) {
		t.Fatalf("wanted different values to differ")
	}
}

func TestAvailabilityEdit_Changed(t *testing.T) {
	from := &TimeOfDay{Hour: 9}
	to := &TimeOfDay{Hour: 17}

	product := &Product{
		Code:          "SKU-1",
		AvailableFrom: from,
		AvailableTo:   to,
		AllowNegative: false,
	}

	t.Run("identical edit is not a change", func(t *testing.T) {
		edit := AvailabilityEdit{Code: "SKU-1", AvailableFrom: &TimeOfDay{Hour: 9}, AvailableTo: &TimeOfDay{Hour: 17}}
		if edit.Changed(product) {
			t.Fatalf("wanted no change for an identical edit")
		}
	})

	t.Run("window change is detected", func(t *testing.T) {
		edit := AvailabilityEdit{Code: "SKU-1", AvailableFrom: &TimeOfDay{Hour: 10}, AvailableTo: to}
		if !edit.Changed(product) {
			t.Fatalf("wanted a changed window to be detected")
		}
	})

	t.Run("clearing the window is detected", func(t *testing.T) {
		edit := AvailabilityEdit{Code: "SKU-1", AvailableFrom: nil, AvailableTo: nil}
		if !edit.Changed(product) {
			t.Fatalf("wanted a cleared window to be detected")
		}
	})

	t.Run("flag change is detected", func(t *testing.T) {
		edit := AvailabilityEdit{Code: "SKU-1", AvailableFrom: from, AvailableTo: to, AllowNegative: true}
		if !edit.Changed(product) {
			t.Fatalf("wanted a flipped flag to be detected")
		}
	})
}
