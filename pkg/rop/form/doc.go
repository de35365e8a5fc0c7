// Package form wraps a model with form-level field rules so a service can
// validate input and persist it in one step.
//
// Rules are validate struct tags evaluated by go-playground/validator:
//
//	type AddressParams struct {
//	    Line1    string `form:"line1" validate:"min=5"`
//	    Postcode string `form:"postcode"`
//	}
//
//	f := form.New(params, address)
//	s.ValidateOne(ctx, "address", f)
//
// Messages are keyed by field name and follow the "is too short (minimum is
// 5 characters)" style. Validate, SaveOrError and model promotion return
// *Error, which carries a failed rop.Result.
package form
