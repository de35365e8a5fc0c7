package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/form"
	"github.com/ib-77/ropsvc/pkg/rop/service"
)

// signUpInput reads the "user" and "address" params shared by every
// sign-up flavour.
type signUpInput struct {
	db      *DB
	user    UserParams
	address AddressParams
}

func (in *signUpInput) Initialize(_ context.Context, params rop.Payload) error {
	var err error
	if in.user, err = userParams(params, "user"); err != nil {
		return err
	}
	if in.address, err = addressParams(params, "address"); err != nil {
		return err
	}
	return nil
}

// promote turns a *form.Error into an abort of b keyed by key. Other
// errors pass through.
func promote(b *service.Base, key string, err error) error {
	var invalid *form.Error
	if errors.As(err, &invalid) {
		return b.FailAndAbort(rop.Of(key, invalid.Messages()))
	}
	return err
}

// saveBoth checks the model rules of both forms, then writes both rows in
// one transaction.
func saveBoth(ctx context.Context, db *DB, b *service.Base, user *UserForm, address *AddressForm) error {
	if err := promote(b, "user", user.Validate(ctx)); err != nil {
		return err
	}
	if err := promote(b, "address", address.Validate(ctx)); err != nil {
		return err
	}

	u, a := *user.User, *address.Address
	err := db.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := user.User.write(ctx, tx); err != nil {
			return err
		}
		return address.Address.write(ctx, tx)
	})
	if err != nil {
		// ids assigned inside the rolled back transaction are not real
		*user.User, *address.Address = u, a
	}
	return err
}

// SignUp validates the user and the address together and saves both when
// every check passes. Success data: {user, address}.
type SignUp struct {
	service.Base
	signUpInput
}

func NewSignUp(db *DB) service.Factory {
	return func() service.Service {
		return &SignUp{signUpInput: signUpInput{db: db}}
	}
}

func (s *SignUp) Call(ctx context.Context) error {
	userForm := NewUserForm(s.db, s.user)
	addressForm := NewAddressForm(s.db, s.address)

	pipeline := service.NewPipeline().
		Add("user", userForm).
		Add("address", addressForm)
	if err := s.ValidateAll(ctx, pipeline); err != nil {
		return err
	}

	if err := saveBoth(ctx, s.db, &s.Base, userForm, addressForm); err != nil {
		return err
	}

	s.Succeed(rop.Of("user", userForm.User, "address", addressForm.Address))
	return nil
}

// StrictSignUp stops at the first invalid form, address first.
type StrictSignUp struct {
	service.Base
	signUpInput
}

func NewStrictSignUp(db *DB) service.Factory {
	return func() service.Service {
		return &StrictSignUp{signUpInput: signUpInput{db: db}}
	}
}

func (s *StrictSignUp) Call(ctx context.Context) error {
	addressForm := NewAddressForm(s.db, s.address)
	if err := s.ValidateOneAndAbort(ctx, "address", addressForm); err != nil {
		return err
	}

	userForm := NewUserForm(s.db, s.user)
	if err := s.ValidateOneAndAbort(ctx, "user", userForm); err != nil {
		return err
	}

	if err := saveBoth(ctx, s.db, &s.Base, userForm, addressForm); err != nil {
		return err
	}

	s.Succeed(rop.Of("user", userForm.User, "address", addressForm.Address))
	return nil
}

// LenientSignUp records validation failures without stopping, then saves
// what it can and succeeds anyway. The final Succeed replaces any earlier
// failure.
type LenientSignUp struct {
	service.Base
	signUpInput
}

func NewLenientSignUp(db *DB) service.Factory {
	return func() service.Service {
		return &LenientSignUp{signUpInput: signUpInput{db: db}}
	}
}

func (s *LenientSignUp) Call(ctx context.Context) error {
	userForm := NewUserForm(s.db, s.user)
	s.ValidateOne(ctx, "user", userForm)

	addressForm := NewAddressForm(s.db, s.address)
	s.ValidateOne(ctx, "address", addressForm)

	logger := zerolog.Ctx(ctx)
	if !userForm.Save(ctx) {
		logger.Debug().Msg("user not saved")
	}
	if !addressForm.Save(ctx) {
		logger.Debug().Msg("address not saved")
	}

	s.Succeed(rop.Of("user", userForm.User))
	return nil
}

// Welcome greets the "user" param. It fails when the user has no name.
type Welcome struct {
	service.Base
	user *User
}

func NewWelcome() service.Factory {
	return func() service.Service { return &Welcome{} }
}

func (w *Welcome) Initialize(_ context.Context, params rop.Payload) error {
	v, ok := params.Get("user")
	if !ok {
		return fmt.Errorf("%w: user", ErrMissingParam)
	}
	user, ok := v.(*User)
	if !ok || user == nil {
		return fmt.Errorf("%w: user must be a *User, got %T", ErrMissingParam, v)
	}
	w.user = user
	return nil
}

func (w *Welcome) Call(context.Context) error {
	if w.user.Name == "" {
		w.Fail(rop.Of("name", []string{"can't be blank"}))
		return nil
	}
	w.Succeed(rop.Of("greeting", "Welcome, "+w.user.Name+"!"))
	return nil
}

// Register signs a user up and then welcomes them. A failed sign-up aborts
// Register with the sign-up errors; a failed welcome does not, Register
// still succeeds with welcomed set to false.
type Register struct {
	service.Base
	db *DB
}

func NewRegister(db *DB) service.Factory {
	return func() service.Service { return &Register{db: db} }
}

func (r *Register) Initialize(_ context.Context, params rop.Payload) error {
	if !params.Has("user") {
		return fmt.Errorf("%w: user", ErrMissingParam)
	}
	if !params.Has("address") {
		return fmt.Errorf("%w: address", ErrMissingParam)
	}
	return nil
}

func (r *Register) Call(ctx context.Context) error {
	signedUp, err := service.InvokeOrAbort(ctx, NewSignUp(r.db), r.Params())
	if err != nil {
		return err
	}

	user := signedUp.Get("user")
	welcome, err := service.Invoke(ctx, NewWelcome(), rop.Of("user", user))
	if err != nil {
		return err
	}

	data := rop.Of("user", user, "welcomed", welcome.IsSuccess())
	if welcome.IsSuccess() {
		data = data.With("greeting", welcome.Get("greeting"))
	}
	r.Succeed(data)
	return nil
}
