// Package validation checks the structure of a greeting submission before
// any moderation or persistence happens. It is pure: no I/O, no clock.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"saludos/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Config tunes the rules that differ between deployments.
type Config struct {
	Variant     domain.FormVariant
	StrictNames bool
	// NarrativeMax is the upper bound in characters for narrative fields.
	// Zero disables the bound.
	NarrativeMax int
}

var (
	lettersPattern    = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	emailLocalPattern = regexp.MustCompile(`^[^\s@]+$`)
)

// fieldRule validates one field with a validator tag chain and maps the
// failing tag to the message shown to the user.
type fieldRule struct {
	field    string
	value    func(domain.GreetingRequest) string
	tag      string
	messages map[string]string
	fallback string
}

// Validator reports every violated field of a request in a single pass.
type Validator struct {
	validate *validator.Validate
	rules    []fieldRule
}

// New builds a validator for the given configuration. The rule set is
// immutable after construction and safe for concurrent use.
func New(cfg Config) *Validator {
	v := validator.New()
	mustRegister(v, "mintrim", minTrimmed)
	mustRegister(v, "maxtrim", maxTrimmed)
	mustRegister(v, "letters", onlyLetters)
	mustRegister(v, "emaillocal", emailLocal)
	mustRegister(v, "province", province)
	mustRegister(v, "emaildomain", emailDomain)

	return &Validator{
		validate: v,
		rules:    buildRules(cfg),
	}
}

// Validate checks every field and returns all violations keyed by field
// wire name. The result is empty when the request is valid.
func (v *Validator) Validate(req domain.GreetingRequest) domain.ValidationErrorSet {
	errs := domain.ValidationErrorSet{}
	for _, rule := range v.rules {
		err := v.validate.Var(rule.value(req), rule.tag)
		if err == nil {
			continue
		}
		errs[rule.field] = rule.message(err)
	}
	return errs
}

func (r fieldRule) message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return r.fallback
}

func buildRules(cfg Config) []fieldRule {
	nameTag := "required,mintrim=2"
	if cfg.StrictNames {
		nameTag += ",letters"
	}

	narrativeTag := func(min int) string {
		tag := "required,mintrim=" + strconv.Itoa(min)
		if cfg.NarrativeMax > 0 {
			tag += ",maxtrim=" + strconv.Itoa(cfg.NarrativeMax)
		}
		return tag
	}
	tooLong := fmt.Sprintf("El texto no puede superar los %d caracteres", cfg.NarrativeMax)

	rules := []fieldRule{
		nameRule(domain.FieldSenderName, nameTag,
			func(r domain.GreetingRequest) string { return r.SenderName },
			"El nombre es requerido (mínimo 2 caracteres)",
			"El nombre solo puede contener letras y espacios"),
		nameRule(domain.FieldRelationship, nameTag,
			func(r domain.GreetingRequest) string { return r.Relationship },
			"El parentesco es requerido",
			"El parentesco solo puede contener letras y espacios"),
		nameRule(domain.FieldChildName, nameTag,
			func(r domain.GreetingRequest) string { return r.ChildName },
			"El nombre del niño o la niña es requerido (mínimo 2 caracteres)",
			"El nombre del niño o la niña solo puede contener letras y espacios"),
		{
			field:    domain.FieldEmail,
			value:    func(r domain.GreetingRequest) string { return r.EmailLocal },
			tag:      "required,emaillocal",
			fallback: "Ingresá un email válido",
		},
		{
			field:    domain.FieldEmailDomain,
			value:    func(r domain.GreetingRequest) string { return r.EmailDomain },
			tag:      "required,emaildomain",
			fallback: "Seleccioná un dominio de email",
		},
		{
			field:    domain.FieldProvince,
			value:    func(r domain.GreetingRequest) string { return r.Province },
			tag:      "required,province",
			fallback: "Seleccioná una provincia válida",
		},
		{
			field:    domain.FieldWhatHappened,
			value:    func(r domain.GreetingRequest) string { return r.WhatHappened },
			tag:      narrativeTag(10),
			messages: map[string]string{"maxtrim": tooLong},
			fallback: "Contanos qué hizo en el año (mínimo 10 caracteres)",
		},
	}

	if cfg.Variant == domain.VariantFull {
		rules = append(rules,
			fieldRule{
				field:    domain.FieldSpecialMemory,
				value:    func(r domain.GreetingRequest) string { return r.SpecialMemory },
				tag:      narrativeTag(5),
				messages: map[string]string{"maxtrim": tooLong},
				fallback: "Compartí un recuerdo especial",
			},
			fieldRule{
				field:    domain.FieldMagicNightWish,
				value:    func(r domain.GreetingRequest) string { return r.MagicNightWish },
				tag:      narrativeTag(5),
				messages: map[string]string{"maxtrim": tooLong},
				fallback: "Contanos su pedido para la Noche Mágica",
			},
		)
	}

	return rules
}

func nameRule(field, tag string, value func(domain.GreetingRequest) string, required, letters string) fieldRule {
	return fieldRule{
		field:    field,
		value:    value,
		tag:      tag,
		messages: map[string]string{"letters": letters},
		fallback: required,
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func trimmedLen(fl validator.FieldLevel) int {
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
}

func intParam(fl validator.FieldLevel) int {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validation: bad param %q for %s", fl.Param(), fl.GetTag()))
	}
	return n
}

func minTrimmed(fl validator.FieldLevel) bool {
	return trimmedLen(fl) >= intParam(fl)
}

func maxTrimmed(fl validator.FieldLevel) bool {
	return trimmedLen(fl) <= intParam(fl)
}

func onlyLetters(fl validator.FieldLevel) bool {
	return lettersPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func emailLocal(fl validator.FieldLevel) bool {
	return emailLocalPattern.MatchString(fl.Field().String())
}

func province(fl validator.FieldLevel) bool {
	return domain.IsProvince(fl.Field().String())
}

func emailDomain(fl validator.FieldLevel) bool {
	return domain.IsEmailDomain(fl.Field().String())
}
