package account

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/otpvault/pkg/codec"
)

// Account is a single TOTP registration.
type Account struct {
	Name   string `json:"name" yaml:"name" bson:"name"`
	Secret string `json:"secret" yaml:"secret" bson:"secret"`
	Note   string `json:"note" yaml:"note" bson:"note"`
}

// Same reports whether a and other identify the same registration.
func (a Account) Same(other Account) bool {
	return a.Name == other.Name && a.Secret == other.Secret
}

// Key returns the raw HMAC key of the account.
func (a Account) Key() ([]byte, error) {
	return codec.DecodeBase32(a.Secret)
}

// Store persists the full list of accounts.
type Store interface {
	// Load returns every stored account in insertion order.
	Load(ctx context.Context) ([]Account, error)
	// Save replaces the stored accounts with the given list.
	Save(ctx context.Context, accounts []Account) error
}

type input struct {
	Name   string `validate:"required,max=256"`
	Secret string `validate:"required,base32"`
	Note   string `validate:"max=1024"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("base32", func(fl validator.FieldLevel) bool {
			return codec.IsBase32(fl.Field().String())
		})
	})
	return validate
}

// New builds an account from manual input. The name is trimmed and the
// secret is normalized; malformed input is rejected before anything is
// stored.
func New(name, secret, note string) (Account, error) {
	in := input{
		Name:   strings.TrimSpace(name),
		Secret: secret,
		Note:   strings.TrimSpace(note),
	}

	if err := getValidator().Struct(in); err != nil {
		return Account{}, validationError(err)
	}

	normalized, err := codec.NormalizeBase32(in.Secret)
	if err != nil {
		return Account{}, errors.Join(ErrInvalidAccount, err)
	}

	return Account{Name: in.Name, Secret: normalized, Note: in.Note}, nil
}

func validationError(err error) error {
	errs := []error{ErrInvalidAccount}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Secret" {
				errs = append(errs, codec.ErrInvalidSecretEncoding)
				break
			}
		}
	}

	return errors.Join(append(errs, err)...)
}
