package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	userNumberRe  = regexp.MustCompile(`^[A-Z0-9-]{2,32}$`)
	phoneNumberRe = regexp.MustCompile(`^\+?[0-9]{5,15}$`)
)

var assetTypes = map[string]struct{}{
	"phone":  {},
	"mobile": {},
	"laptop": {},
}

var phoneTypes = map[string]struct{}{
	"mobile": {},
	"work":   {},
	"home":   {},
}

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"asset_type":   isAssetType,
		"phone_type":   isPhoneType,
		"user_number":  isUserNumber,
		"phone_number": isPhoneNumber,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isAssetType(fl validator.FieldLevel) bool {
	_, ok := assetTypes[fl.Field().String()]
	return ok
}

func isPhoneType(fl validator.FieldLevel) bool {
	_, ok := phoneTypes[fl.Field().String()]
	return ok
}

// isUserNumber - табельный номер вида EMP100
func isUserNumber(fl validator.FieldLevel) bool {
	return userNumberRe.MatchString(fl.Field().String())
}

// isPhoneNumber - цифры с необязательным "+", без пробелов
func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberRe.MatchString(fl.Field().String())
}
