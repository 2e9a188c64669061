package lead

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is the callback request form. Bath and Kitchen mark where the
// installation is planned.
type Form struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Extra        string `json:"extra"`
	Bath         bool   `json:"bath"`
	Kitchen      bool   `json:"kitchen"`
	PrefWhatsApp bool   `json:"prefWhatsApp"`
	Consent      bool   `json:"consent"`
}

// Validate checks phone, consent and email, in that order.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Phone) == "" {
		return ErrPhoneRequired
	}
	if !f.Consent {
		return ErrConsentRequired
	}
	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// CallbackRequest is the body posted to the lead intake endpoint.
type CallbackRequest struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PrefWhatsApp bool   `json:"prefWhatsApp"`
	Bath         bool   `json:"bath"`
	Kitchen      bool   `json:"kitchen"`
	Extra        string `json:"extra"`
}

func (f Form) Request() CallbackRequest {
	return CallbackRequest{
		Phone:        f.Phone,
		Email:        f.Email,
		PrefWhatsApp: f.PrefWhatsApp,
		Bath:         f.Bath,
		Kitchen:      f.Kitchen,
		Extra:        f.Extra,
	}
}
