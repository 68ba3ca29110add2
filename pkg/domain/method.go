package domain

import dErrors "passprove/pkg/domain-errors"

// Method is the verification technique a customer picks for a session.
// Invariant: the value must be one of the supported methods.
//
// Usage: construct via ParseMethod at trust boundaries; direct casting
// bypasses validation.
type Method string

// Supported verification methods.
const (
	MethodBankID         Method = "bankid"
	MethodMojeID         Method = "mojeid"
	MethodOCR            Method = "ocr"
	MethodFaceScan       Method = "facescan"
	MethodReverification Method = "reverification"
	MethodQRCode         Method = "qrcode"
)

var validMethods = map[Method]bool{
	MethodBankID:         true,
	MethodMojeID:         true,
	MethodOCR:            true,
	MethodFaceScan:       true,
	MethodReverification: true,
	MethodQRCode:         true,
}

// ParseMethod constructs a Method from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "method cannot be empty")
	}
	m := Method(s)
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "Invalid verification method")
	}
	return m, nil
}

// ParseMethods parses a list, failing on the first unsupported entry.
func ParseMethods(values []string) ([]Method, error) {
	out := make([]Method, 0, len(values))
	for _, v := range values {
		m, err := ParseMethod(v)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// IsValid checks if the method is one of the supported enum values.
func (m Method) IsValid() bool {
	return validMethods[m]
}

// RequiresRedirect reports whether the method hands the customer over to an
// external identity provider.
func (m Method) RequiresRedirect() bool {
	return m == MethodBankID || m == MethodMojeID
}

func (m Method) String() string {
	return string(m)
}
