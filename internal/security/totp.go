package security

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpIssuer names the service in authenticator apps.
const totpIssuer = "Atelier3D Admin"

// GenerateTOTPKey provisions a new TOTP secret for an admin account.
func GenerateTOTPKey(accountName string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
	})
}

// ValidateTOTPCode checks a 6-digit code against a stored secret.
func ValidateTOTPCode(code, secret string) bool {
	return totp.Validate(code, secret)
}
