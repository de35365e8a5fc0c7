package accounts

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/form"
)

var (
	letters  = regexp.MustCompile(`[a-zA-Z]+`)
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := form.NewValidator()
	// hasletter: the value contains at least one ASCII letter
	if err := v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
		return letters.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type UserParams struct {
	Email string `form:"email"`
	Name  string `form:"name" validate:"omitempty,hasletter"`
}

type AddressParams struct {
	Line1    string `form:"line1" validate:"min=5"`
	Postcode string `form:"postcode"`
}

// UserForm checks the name format and then the user model.
type UserForm struct {
	*form.Form[UserParams]
	User *User
}

func NewUserForm(db *DB, p UserParams) *UserForm {
	u := NewUser(db, p.Email, p.Name)
	return &UserForm{Form: form.New(p, u, form.WithValidator(validate)), User: u}
}

// AddressForm checks the first line length and then the address model.
type AddressForm struct {
	*form.Form[AddressParams]
	Address *Address
}

func NewAddressForm(db *DB, p AddressParams) *AddressForm {
	a := NewAddress(db, p.Line1, p.Postcode)
	return &AddressForm{Form: form.New(p, a, form.WithValidator(validate)), Address: a}
}

// userParams reads {email, name} out of a nested params entry.
func userParams(params rop.Payload, key string) (UserParams, error) {
	p, err := nested(params, key)
	if err != nil {
		return UserParams{}, err
	}
	return UserParams{Email: text(p, "email"), Name: text(p, "name")}, nil
}

func addressParams(params rop.Payload, key string) (AddressParams, error) {
	p, err := nested(params, key)
	if err != nil {
		return AddressParams{}, err
	}
	return AddressParams{Line1: text(p, "line1"), Postcode: text(p, "postcode")}, nil
}

func nested(params rop.Payload, key string) (rop.Payload, error) {
	v, ok := params.Get(key)
	if !ok {
		return rop.Payload{}, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	switch p := v.(type) {
	case rop.Payload:
		return p, nil
	case map[string]any:
		return rop.FromMap(p), nil
	case map[string]string:
		return rop.FromMap(p), nil
	}
	return rop.Payload{}, fmt.Errorf("%w: %s must be a map, got %T", ErrMissingParam, key, v)
}

func text(p rop.Payload, key string) string {
	v, ok := p.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
