package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername_CharacterSet(t *testing.T) {
	for c := 0; c < 128; c++ {
		ch := byte(c)
		allowed := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '.'

		err := Username("alice" + string(ch) + "01")
		if allowed {
			assert.NoError(t, err, "char %q must be allowed", ch)
		} else {
			assert.ErrorIs(t, err, common.ErrInvalidFormat, "char %q must be rejected", ch)
		}
	}

	assert.ErrorIs(t, Username("alicé"), common.ErrInvalidFormat)
	assert.ErrorIs(t, Username("ali_ce"), common.ErrInvalidFormat)
	assert.NoError(t, Username("Alice.01"))
}

func TestPassword_CharacterSet(t *testing.T) {
	for c := 0; c < 128; c++ {
		ch := byte(c)
		allowed := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || strings.IndexByte(punctuation, ch) >= 0

		err := Password("Secret" + string(ch) + "9")
		if allowed {
			assert.NoError(t, err, "char %q must be allowed", ch)
		} else {
			assert.ErrorIs(t, err, common.ErrInvalidFormat, "char %q must be rejected", ch)
		}
	}

	assert.ErrorIs(t, Password("pass word"), common.ErrInvalidFormat)
	assert.ErrorIs(t, Password("pässword"), common.ErrInvalidFormat)
	assert.NoError(t, Password("Secret!9"))
	assert.NoError(t, Password(`~{}[]\|"'`))
}

func TestMatches_IsByteExact(t *testing.T) {
	assert.NoError(t, Matches("Secret!9")("Secret!9"))
	assert.ErrorIs(t, Matches("Secret!9")("secret!9"), common.ErrMismatch)
	assert.ErrorIs(t, Matches("Secret!9")("Secret!9 "), common.ErrMismatch)
	assert.ErrorIs(t, Matches("Secret!9")(""), common.ErrMismatch)
}

func TestPhone(t *testing.T) {
	valid := []string{"+919812345678", "919812345678", "123456789", "+1123456789012345", "1123456789"}
	for _, p := range valid {
		assert.NoError(t, Phone(p), p)
	}

	invalid := []string{"12345678", "+12345678", "98123abc678", "", "+91 98123 45678", "2234567890123456", "++919812345678"}
	for _, p := range invalid {
		assert.ErrorIs(t, Phone(p), common.ErrInvalidFormat, p)
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@b.com"))
	assert.NoError(t, Email("first.last+tag@iitb.ac.in"))
	assert.ErrorIs(t, Email("a@b"), common.ErrInvalidFormat)
	assert.ErrorIs(t, Email("no-at.example.com"), common.ErrInvalidFormat)
	assert.ErrorIs(t, Email(strings.Repeat("a", 250)+"@b.com"), common.ErrInvalidFormat)
}

func TestPosition(t *testing.T) {
	assert.NoError(t, Position("coordinator"))
	assert.NoError(t, Position("instructor"))
	assert.ErrorIs(t, Position("Coordinator"), common.ErrInvalidChoice)
	assert.ErrorIs(t, Position(""), common.ErrInvalidChoice)
}

func TestRequiredAndMaxLength(t *testing.T) {
	assert.ErrorIs(t, Required(""), common.ErrRequired)
	assert.ErrorIs(t, Required("   "), common.ErrRequired)
	assert.NoError(t, Required("x"))

	assert.NoError(t, MaxLength(3)("abc"))
	assert.NoError(t, MaxLength(3)("äöü"))
	assert.ErrorIs(t, MaxLength(3)("abcd"), common.ErrTooLong)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	counting := func(string) error {
		calls++
		return nil
	}

	err := Run(
		Rule{Field: "a", Value: "ok", Checks: []Check{counting}},
		Rule{Field: "b", Value: "", Checks: []Check{Required, counting}},
		Rule{Field: "c", Value: "ok", Checks: []Check{counting}},
	)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "b", fe.Field)
	assert.ErrorIs(t, err, common.ErrRequired)
	assert.Equal(t, 1, calls, "checks after the failure must not run")
	assert.Equal(t, "b: this field is required", err.Error())
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name              string
		user, pwd, repeat string
		field             string
		want              error
	}{
		{name: "ok", user: "Alice.01", pwd: "Secret!9", repeat: "Secret!9"},
		{name: "bad username", user: "alice bob", pwd: "Secret!9", repeat: "Secret!9", field: "username", want: common.ErrInvalidFormat},
		{name: "long username", user: strings.Repeat("a", 33), pwd: "Secret!9", repeat: "Secret!9", field: "username", want: common.ErrTooLong},
		{name: "long username with bad char", user: strings.Repeat("a", 33) + "!", pwd: "Secret!9", repeat: "Secret!9", field: "username", want: common.ErrInvalidFormat},
		{name: "long password with space", user: "alice", pwd: strings.Repeat("a", 33) + " ", repeat: strings.Repeat("a", 33) + " ", field: "password", want: common.ErrInvalidFormat},
		{name: "bad password", user: "alice", pwd: "Secret 9", repeat: "Secret 9", field: "password", want: common.ErrInvalidFormat},
		{name: "mismatch", user: "alice", pwd: "Secret!9", repeat: "Secret!8", field: "confirm_password", want: common.ErrMismatch},
		{name: "missing confirmation", user: "alice", pwd: "Secret!9", repeat: "", field: "confirm_password", want: common.ErrRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Credentials(tt.user, tt.pwd, tt.repeat)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
