package validation

import (
	"strings"
	"testing"

	"saludos/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() domain.GreetingRequest {
	return domain.GreetingRequest{
		SenderName:     "Ana",
		Relationship:   "abuela",
		EmailLocal:     "ana.perez",
		EmailDomain:    "@gmail.com",
		Province:       "Córdoba",
		ChildName:      "Tomás",
		WhatHappened:   "Ganó el campeonato de fútbol de su escuela",
		SpecialMemory:  "El viaje a la playa",
		MagicNightWish: "Una bicicleta roja",
	}
}

func newFull() *Validator {
	return New(Config{Variant: domain.VariantFull, NarrativeMax: 80})
}

func TestValidRequestPasses(t *testing.T) {
	errs := newFull().Validate(validRequest())
	assert.Empty(t, errs)
	assert.False(t, errs.HasErrors())
}

func TestEmailAndProvinceReportedTogether(t *testing.T) {
	req := validRequest()
	req.EmailLocal = "abc def"
	req.Province = "Gales"

	errs := newFull().Validate(req)

	require.Len(t, errs, 2)
	assert.Equal(t, "Ingresá un email válido", errs[domain.FieldEmail])
	assert.Equal(t, "Seleccioná una provincia válida", errs[domain.FieldProvince])
}

func TestReportsExactlyTheViolatedFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.GreetingRequest)
		fields []string
	}{
		{
			name:   "empty sender name",
			mutate: func(r *domain.GreetingRequest) { r.SenderName = "" },
			fields: []string{domain.FieldSenderName},
		},
		{
			name:   "short relationship after trim",
			mutate: func(r *domain.GreetingRequest) { r.Relationship = "  a  " },
			fields: []string{domain.FieldRelationship},
		},
		{
			name:   "missing child name",
			mutate: func(r *domain.GreetingRequest) { r.ChildName = " " },
			fields: []string{domain.FieldChildName},
		},
		{
			name:   "email with at sign",
			mutate: func(r *domain.GreetingRequest) { r.EmailLocal = "ana@gmail.com" },
			fields: []string{domain.FieldEmail},
		},
		{
			name:   "unknown domain",
			mutate: func(r *domain.GreetingRequest) { r.EmailDomain = "gmail.com" },
			fields: []string{domain.FieldEmailDomain},
		},
		{
			name:   "short narrative",
			mutate: func(r *domain.GreetingRequest) { r.WhatHappened = "  corto   " },
			fields: []string{domain.FieldWhatHappened},
		},
		{
			name: "several at once",
			mutate: func(r *domain.GreetingRequest) {
				r.SenderName = ""
				r.SpecialMemory = "hey"
				r.MagicNightWish = ""
			},
			fields: []string{domain.FieldSenderName, domain.FieldSpecialMemory, domain.FieldMagicNightWish},
		},
	}

	v := newFull()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			errs := v.Validate(req)

			keys := make([]string, 0, len(errs))
			for k := range errs {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.fields, keys)
		})
	}
}

func TestNarrativeUpperBound(t *testing.T) {
	req := validRequest()
	req.WhatHappened = strings.Repeat("a", 81)

	errs := newFull().Validate(req)

	assert.Equal(t, "El texto no puede superar los 80 caracteres", errs[domain.FieldWhatHappened])
}

func TestNarrativeBoundCountsCharactersNotBytes(t *testing.T) {
	req := validRequest()
	req.WhatHappened = strings.Repeat("ñ", 80)

	errs := newFull().Validate(req)

	assert.NotContains(t, errs, domain.FieldWhatHappened)
}

func TestNarrativeBoundDisabled(t *testing.T) {
	req := validRequest()
	req.WhatHappened = strings.Repeat("a", 500)

	errs := New(Config{Variant: domain.VariantFull}).Validate(req)

	assert.Empty(t, errs)
}

func TestStrictNamesRejectDigitsAndPunctuation(t *testing.T) {
	v := New(Config{Variant: domain.VariantFull, StrictNames: true, NarrativeMax: 80})

	req := validRequest()
	req.SenderName = "Ana 2"
	req.ChildName = "Tomás!"
	req.Relationship = "Abuela Ñata"

	errs := v.Validate(req)

	require.Len(t, errs, 2)
	assert.Equal(t, "El nombre solo puede contener letras y espacios", errs[domain.FieldSenderName])
	assert.Contains(t, errs, domain.FieldChildName)
}

func TestLenientNamesAllowDigits(t *testing.T) {
	req := validRequest()
	req.SenderName = "Ana 2"

	assert.Empty(t, newFull().Validate(req))
}

func TestBasicVariantIgnoresSecondaryNarratives(t *testing.T) {
	v := New(Config{Variant: domain.VariantBasic, NarrativeMax: 80})

	req := validRequest()
	req.SpecialMemory = ""
	req.MagicNightWish = ""

	assert.Empty(t, v.Validate(req))
}

func TestEveryProvinceAccepted(t *testing.T) {
	v := newFull()
	require.Len(t, domain.Provinces, 24)
	for _, p := range domain.Provinces {
		req := validRequest()
		req.Province = p
		assert.Empty(t, v.Validate(req), p)
	}
}
