package form

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/ropsvc/pkg/rop"
)

type addressParams struct {
	Line1    string `form:"line1" validate:"min=5"`
	Postcode string `json:"postcode" validate:"required,len=5"`
}

type fakeModel struct {
	valid    bool
	messages rop.Payload
	saveErr  error
	saved    int
}

func (m *fakeModel) IsValid(context.Context) bool { return m.valid }

func (m *fakeModel) ErrorMessages() rop.Payload { return m.messages }

func (m *fakeModel) Save(ctx context.Context) bool { return m.SaveOrError(ctx) == nil }

func (m *fakeModel) SaveOrError(context.Context) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	return nil
}

func validModel() *fakeModel {
	return &fakeModel{valid: true}
}

func TestIsValid_ValidForm(t *testing.T) {
	t.Parallel()

	f := New(addressParams{Line1: "Street 1", Postcode: "15005"}, validModel())

	assert.True(t, f.IsValid(context.Background()))
	assert.False(t, f.IsInvalid(context.Background()))
	assert.True(t, f.ErrorMessages().IsEmpty())
}

func TestIsValid_CollectsMessagesByFieldName(t *testing.T) {
	t.Parallel()

	f := New(addressParams{Line1: "Str"}, validModel())

	require.False(t, f.IsValid(context.Background()))
	msgs := f.ErrorMessages()
	assert.Equal(t, []string{"line1", "postcode"}, msgs.Keys())
	line1, _ := msgs.Get("line1")
	assert.Equal(t, []string{"is too short (minimum is 5 characters)"}, line1)
	postcode, _ := msgs.Get("postcode")
	assert.Equal(t, []string{"can't be blank"}, postcode)
}

func TestValidate_PromotesModelErrors(t *testing.T) {
	t.Parallel()

	model := &fakeModel{messages: rop.Of("postcode", []string{"can't be blank"})}
	f := New(addressParams{Line1: "Street 1", Postcode: "15005"}, model)

	err := f.Validate(context.Background())

	var formErr *Error
	require.ErrorAs(t, err, &formErr)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.True(t, formErr.Result().IsFailure())
	assert.Equal(t, []string{"can't be blank"}, formErr.Result().Get("postcode"))
	assert.Equal(t, "validation failed: postcode can't be blank", err.Error())
}

func TestValidate_FormRulesFirst(t *testing.T) {
	t.Parallel()

	model := &fakeModel{messages: rop.Of("other", []string{"never reached"})}
	f := New(addressParams{Line1: "Str", Postcode: "15005"}, model)

	var formErr *Error
	require.ErrorAs(t, f.Validate(context.Background()), &formErr)
	assert.True(t, formErr.Messages().Has("line1"))
	assert.False(t, formErr.Messages().Has("other"))
}

func TestValidate_Passes(t *testing.T) {
	t.Parallel()

	f := New(addressParams{Line1: "Street 1", Postcode: "15005"}, validModel())
	assert.NoError(t, f.Validate(context.Background()))

	noModel := New(addressParams{Line1: "Street 1", Postcode: "15005"}, nil)
	assert.NoError(t, noModel.Validate(context.Background()))
}

func TestSave_OnlyWhenValid(t *testing.T) {
	t.Parallel()

	model := validModel()
	assert.True(t, New(addressParams{Line1: "Street 1", Postcode: "15005"}, model).Save(context.Background()))
	assert.Equal(t, 1, model.saved)

	assert.False(t, New(addressParams{Line1: "Str", Postcode: "15005"}, model).Save(context.Background()))
	assert.Equal(t, 1, model.saved)

	assert.False(t, New(addressParams{Line1: "Street 1", Postcode: "15005"}, nil).Save(context.Background()))
}

func TestSaveOrError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	model := validModel()
	require.NoError(t, New(addressParams{Line1: "Street 1", Postcode: "15005"}, model).SaveOrError(ctx))
	assert.Equal(t, 1, model.saved)

	err := New(addressParams{Line1: "Str", Postcode: "15005"}, model).SaveOrError(ctx)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 1, model.saved)

	boom := errors.New("disk full")
	err = New(addressParams{Line1: "Street 1", Postcode: "15005"}, &fakeModel{valid: true, saveErr: boom}).SaveOrError(ctx)
	assert.ErrorIs(t, err, boom)

	err = New(addressParams{Line1: "Street 1", Postcode: "15005"}, nil).SaveOrError(ctx)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestWithMessages_CustomRenderer(t *testing.T) {
	t.Parallel()

	f := New(addressParams{Line1: "Str", Postcode: "15005"}, validModel(),
		WithMessages(func(fe validator.FieldError) string { return "bad " + fe.Tag() }))

	require.False(t, f.IsValid(context.Background()))
	line1, _ := f.ErrorMessages().Get("line1")
	assert.Equal(t, []string{"bad min"}, line1)
}

func TestWithValidator_CustomRule(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	require.NoError(t, v.RegisterValidation("street", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != "nowhere"
	}))

	type params struct {
		Line1 string `form:"line1" validate:"street"`
	}

	f := New(params{Line1: "nowhere"}, validModel(), WithValidator(v))
	require.False(t, f.IsValid(context.Background()))
	line1, _ := f.ErrorMessages().Get("line1")
	assert.Equal(t, []string{"is invalid"}, line1)
}

func TestCheck_NonStructGoesToBase(t *testing.T) {
	t.Parallel()

	msgs := Check(context.Background(), NewValidator(), 42, nil)
	assert.True(t, msgs.Has(BaseKey))
}

func TestFullMessages_Nested(t *testing.T) {
	t.Parallel()

	msgs := rop.Of(
		"address", rop.Of("line1", []string{"is too short"}),
		"name", []string{"is invalid"},
		BaseKey, "something else",
	)

	assert.Equal(t, []string{
		"address.line1 is too short",
		"name is invalid",
		"something else",
	}, FullMessages(msgs))
}
