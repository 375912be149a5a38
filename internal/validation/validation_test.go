package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type author struct {
	Name string `json:"name" validate:"required"`
}

type form struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Mode     string   `json:"mode" validate:"required,oneof=ONLINE OFFLINE"`
	PaperURL string   `json:"paper_url" validate:"required,startswith=http"`
	Authors  []author `json:"authors" validate:"required,min=1,max=3,dive"`
	Agree    bool     `json:"agree" validate:"eq=true"`
}

func validForm() form {
	return form{
		Email:    "author@example.org",
		Password: "secret1",
		Mode:     "ONLINE",
		PaperURL: "https://files.example.org/paper.pdf",
		Authors:  []author{{Name: "First Author"}},
		Agree:    true,
	}
}

func TestValidateCleanPayload(t *testing.T) {
	assert.Nil(t, Validate(context.Background(), validForm()))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"
	f.Password = "short"
	f.Mode = "HYBRID"
	f.PaperURL = "ftp://files.example.org/paper.pdf"
	f.Agree = false

	fe := Validate(context.Background(), f)
	require.NotNil(t, fe)
	assert.Equal(t, "invalid email format", fe["email"])
	assert.Equal(t, "must be at least 6 characters", fe["password"])
	assert.Equal(t, "must be one of: ONLINE, OFFLINE", fe["mode"])
	assert.Equal(t, "must start with http", fe["paper_url"])
	assert.Equal(t, "must equal true", fe["agree"])
}

func TestValidateNestedSlicePath(t *testing.T) {
	f := validForm()
	f.Authors = []author{{Name: "Ok"}, {Name: ""}}

	fe := Validate(context.Background(), f)
	require.NotNil(t, fe)
	assert.Equal(t, "is required", fe["authors[1].name"])
}

func TestValidateSliceBounds(t *testing.T) {
	f := validForm()
	f.Authors = nil
	fe := Validate(context.Background(), f)
	require.NotNil(t, fe)
	assert.Contains(t, fe, "authors")

	f = validForm()
	f.Authors = []author{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	fe = Validate(context.Background(), f)
	require.NotNil(t, fe)
	assert.Equal(t, "must have at most 3 items", fe["authors"])
}

func TestFieldErrorsIsAnError(t *testing.T) {
	var err error = FieldErrors{"email": "invalid email format"}
	assert.Equal(t, "email: invalid email format", err.Error())
}
