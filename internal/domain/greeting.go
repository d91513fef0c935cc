package domain

import "strings"

// Wire names of the greeting form fields. Validation and moderation errors
// are keyed by these names.
const (
	FieldSenderName     = "nombre"
	FieldRelationship   = "parentesco"
	FieldEmail          = "email"
	FieldEmailDomain    = "emailDomain"
	FieldProvince       = "provincia"
	FieldChildName      = "nombreNino"
	FieldWhatHappened   = "queHizo"
	FieldSpecialMemory  = "recuerdoEspecial"
	FieldMagicNightWish = "pedidoNocheMagica"
)

// FormVariant selects how many narrative fields a submission carries.
type FormVariant string

const (
	// VariantBasic only asks what the child did this year.
	VariantBasic FormVariant = "basic"
	// VariantFull adds the special memory and the magic night wish.
	VariantFull FormVariant = "full"
)

// ParseFormVariant maps a config value to a variant, defaulting to full.
func ParseFormVariant(v string) FormVariant {
	if strings.EqualFold(strings.TrimSpace(v), string(VariantBasic)) {
		return VariantBasic
	}
	return VariantFull
}

// GreetingRequest is the untrusted submission as received from the client.
type GreetingRequest struct {
	SenderName     string `json:"nombre" form:"nombre"`
	Relationship   string `json:"parentesco" form:"parentesco"`
	EmailLocal     string `json:"email" form:"email"`
	EmailDomain    string `json:"emailDomain" form:"emailDomain"`
	Province       string `json:"provincia" form:"provincia"`
	ChildName      string `json:"nombreNino" form:"nombreNino"`
	WhatHappened   string `json:"queHizo" form:"queHizo"`
	SpecialMemory  string `json:"recuerdoEspecial" form:"recuerdoEspecial"`
	MagicNightWish string `json:"pedidoNocheMagica" form:"pedidoNocheMagica"`
}

// NarrativeFields returns the free-text fields that go through moderation
// for the given variant, keyed by wire name.
func (r GreetingRequest) NarrativeFields(variant FormVariant) map[string]string {
	fields := map[string]string{
		FieldWhatHappened: r.WhatHappened,
	}
	if variant == VariantFull {
		fields[FieldSpecialMemory] = r.SpecialMemory
		fields[FieldMagicNightWish] = r.MagicNightWish
	}
	return fields
}

// Email reassembles the address from the local part and the chosen domain.
func (r GreetingRequest) Email() string {
	return strings.TrimSpace(r.EmailLocal) + strings.TrimSpace(r.EmailDomain)
}

// ValidationErrorSet maps a field wire name to a user-facing message.
// An empty set means the request is valid.
type ValidationErrorSet map[string]string

func (s ValidationErrorSet) HasErrors() bool {
	return len(s) > 0
}
