package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidator_Struct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	fields, err := v.Struct(signupRequest{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = v.Struct(signupRequest{Email: "not-an-email"})
	require.NoError(t, err)
	assert.Equal(t, "username is a required field", fields["username"])
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "password is a required field", fields["password"])
}
