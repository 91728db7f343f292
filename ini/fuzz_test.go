package ini

import "testing"

func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"[vendor:PrusaResearch]\nmodel:MK3S = 0.4\n",
		"# c\n; d\n\n[s]\r\nk=v\r\n",
		"top = 1\n[s]\nk = a, b,, c\n[s]\nk = d",
	}
	for _, s := range seeds {
		f.Add(s, "vendor:PrusaResearch", "model:MK4IS", "0.4")
	}

	f.Fuzz(func(t *testing.T, input, section, key, value string) {
		doc, err := Parse(input)
		if err != nil {
			return
		}

		if got := doc.String(); got != input {
			t.Fatalf("round trip mismatch:\nwant: %q\ngot:  %q", input, got)
		}

		m := doc.ToMap()
		if got := m.ToDocument().String(); got != input {
			t.Fatalf("unmodified projection mismatch:\nwant: %q\ngot:  %q", input, got)
		}

		// Upsert must be idempotent whenever its output is parseable.
		m.Upsert(section, key, value)
		once := m.ToDocument().String()

		m.Upsert(section, key, value)
		if twice := m.ToDocument().String(); twice != once {
			t.Fatalf("upsert not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	})
}
