package db

import "testing"

func TestMetadata_Scan(t *testing.T) {
	t.Run("should scan a json string", func(t *testing.T) {
		var m Metadata
		if err := m.Scan(`{"updated":3}`); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if m["updated"] != float64(3) {
			t.Fatalf("\nwanted:\nupdated=3\ngot:\n%v", m)
		}
	})

	t.Run("should scan nil as an empty map", func(t *testing.T) {
		var m Metadata
		if err := m.Scan(nil); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if m == nil || len(m) != 0 {
			t.Fatalf("\nwanted:\nempty map\ngot:\n%v", m)
		}
	})

	t.Run("should surface malformed json", func(t *testing.T) {
		var m Metadata
		if err := m.Scan(`{not json`); err == nil {
			t.Fatalf("wanted an error for malformed json")
		}
	})

	t.Run("should reject an unsupported type", func(t *testing.T) {
		var m Metadata
		if err := m.Scan(42); err == nil {
			t.Fatalf("wanted an error for an unsupported type")
		}
	})
}
