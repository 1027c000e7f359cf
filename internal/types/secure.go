package types

const redacted = "***REDACTED***"

// SecretString holds a credential (database URL, API key) that must never
// appear in logs or serialized config dumps. fmt and encoding/json both see
// the redacted placeholder; Unmask returns the plaintext.
type SecretString string

// String implements fmt.Stringer with the redacted placeholder.
func (s SecretString) String() string { return redacted }

// GoString keeps %#v from leaking the value.
func (s SecretString) GoString() string { return redacted }

// MarshalJSON encodes the redacted placeholder.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Unmask returns the plaintext value. Only pass the result straight to the
// driver or client that needs it.
func (s SecretString) Unmask() string { return string(s) }

// IsZero reports whether the secret is unset.
func (s SecretString) IsZero() bool { return s == "" }
