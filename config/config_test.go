package config

import "testing"

func TestValidateRequiresJWTSecret(t *testing.T) {
	saved := AppConfig
	t.Cleanup(func() { AppConfig = saved })

	for _, secret := range []string{"", "   "} {
		AppConfig.JWTSecret = secret
		if err := Validate(); err == nil {
			t.Fatalf("secret %q accepted", secret)
		}
	}
	AppConfig.JWTSecret = "s3cret"
	if err := Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
