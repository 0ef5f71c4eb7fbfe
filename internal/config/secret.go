package config

import "github.com/negrel/secrecy"

const redacted = "******"

// Secret holds a credential read from the environment. Its String and
// MarshalText methods never reveal the value, so a Config can be logged as is.
type Secret struct {
	value secrecy.SecretString
}

func NewSecret(value string) Secret {
	return Secret{value: secrecy.NewSecretString(secrecy.UnsafeStringToBytes(value))}
}

// Expose returns the underlying value. Call it only where the credential is
// handed to a driver.
func (s Secret) Expose() string {
	if s.value.Secret == nil {
		return ""
	}
	return s.value.ExposeSecret()
}

func (s Secret) IsZero() bool {
	return s.Expose() == ""
}

func (s Secret) String() string {
	if s.IsZero() {
		return ""
	}
	return redacted
}

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (s *Secret) UnmarshalText(text []byte) error {
	*s = NewSecret(string(text))
	return nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
