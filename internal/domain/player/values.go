package player

import (
	"strings"

	"github.com/riskibarqy/club-roster/internal/platform/validation"
)

// Name identifies a player within the roster. Comparison ignores case.
type Name string

func NewName(raw string) (Name, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("name", value, validation.RuleWords); err != nil {
		return "", err
	}
	return Name(value), nil
}

func IsValidName(raw string) bool {
	return validation.Valid(raw, validation.RuleWords)
}

func (n Name) SameAs(other Name) bool {
	return strings.EqualFold(string(n), string(other))
}

func (n Name) String() string {
	return string(n)
}

type Phone string

func NewPhone(raw string) (Phone, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("phone", value, validation.RulePhone); err != nil {
		return "", err
	}
	return Phone(value), nil
}

func IsValidPhone(raw string) bool {
	return validation.Valid(raw, validation.RulePhone)
}

type Email string

func NewEmail(raw string) (Email, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("email", value, validation.RuleEmail); err != nil {
		return "", err
	}
	return Email(value), nil
}

func IsValidEmail(raw string) bool {
	return validation.Valid(raw, validation.RuleEmail)
}

type Address string

func NewAddress(raw string) (Address, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("address", value, validation.RuleAddress); err != nil {
		return "", err
	}
	return Address(value), nil
}

func IsValidAddress(raw string) bool {
	return validation.Valid(raw, validation.RuleAddress)
}

// Tag is a free-form label. Unlike names, tags compare by exact string.
type Tag string

func NewTag(raw string) (Tag, error) {
	value := strings.TrimSpace(raw)
	if err := validation.Var("tag", value, validation.RuleAlnum); err != nil {
		return "", err
	}
	return Tag(value), nil
}

func IsValidTag(raw string) bool {
	return validation.Valid(raw, validation.RuleAlnum)
}
