package jobboard_test

import (
	"testing"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload jobboard.LoginRequest
		wantErr bool
	}{
		{
			name:    "valid payload",
			payload: jobboard.LoginRequest{Identifier: "alice", Password: "secret-password"},
		},
		{
			name:    "email identifier is accepted",
			payload: jobboard.LoginRequest{Identifier: "alice@example.com", Password: "secret-password"},
		},
		{
			name:    "missing identifier",
			payload: jobboard.LoginRequest{Password: "secret-password"},
			wantErr: true,
		},
		{
			name:    "missing password",
			payload: jobboard.LoginRequest{Identifier: "alice"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegistrationCreatePayloadValidate(t *testing.T) {
	valid := jobboard.RegistrationCreatePayload{
		Username:        "alice",
		Email:           "alice@example.com",
		Role:            "applicant",
		Password:        "super-secret-password",
		ConfirmPassword: "super-secret-password",
	}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		p := valid
		p.ConfirmPassword = "something-else-entirely"
		assert.Error(t, p.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		p := valid
		p.Email = "not-an-email"
		assert.Error(t, p.Validate())
	})

	t.Run("short password", func(t *testing.T) {
		p := valid
		p.Password = "short"
		p.ConfirmPassword = "short"
		assert.Error(t, p.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		p := valid
		p.Role = "wizard"
		assert.Error(t, p.Validate())
	})

	t.Run("invalid phone", func(t *testing.T) {
		p := valid
		p.Phone = "123"
		assert.Error(t, p.Validate())
	})

	t.Run("valid phone", func(t *testing.T) {
		p := valid
		p.Phone = "+14155552671"
		assert.NoError(t, p.Validate())
	})
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, jobboard.ValidatePhoneNumber(""))
	assert.NoError(t, jobboard.ValidatePhoneNumber("+14155552671"))
	assert.Error(t, jobboard.ValidatePhoneNumber("not-a-number"))
	assert.Error(t, jobboard.ValidatePhoneNumber("123"))
}

func TestFormatValidationErrorToMap(t *testing.T) {
	p := jobboard.RegistrationCreatePayload{}
	err := p.Validate()
	assert.Error(t, err)

	m := jobboard.FormatValidationErrorToMap(err)
	assert.NotEmpty(t, m)
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "password")
}
