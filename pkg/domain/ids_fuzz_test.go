//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseSessionID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseSessionID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE shops;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseSessionID(input)
		if err == nil {
			roundTrip, err2 := ParseSessionID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
			if id.IsNil() {
				t.Error("nil ID accepted")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseMethod checks that only the fixed method vocabulary is accepted.
func FuzzParseMethod(f *testing.F) {
	f.Add("bankid")
	f.Add("qrcode")
	f.Add("")
	f.Add("BANKID")

	f.Fuzz(func(t *testing.T, input string) {
		m, err := ParseMethod(input)
		if err == nil && !m.IsValid() {
			t.Errorf("accepted unsupported method %q", input)
		}
	})
}
