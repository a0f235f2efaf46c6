package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	errBase := New(KindNotFound, "account not found")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct error", errBase, KindNotFound},
		{"wrapped with fmt.Errorf", fmt.Errorf("id=3: %w", errBase), KindNotFound},
		{"validation", New(KindValidation, "bad"), KindValidation},
		{"conflict", New(KindConflict, "dup"), KindConflict},
		{"auth", New(KindAuth, "no key"), KindAuth},
		{"plain error defaults to storage", errors.New("disk full"), KindStorage},
		{"storage helper", Storage("find", errors.New("boom")), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("constraint failed")
	err := Wrap(KindConflict, "name already exists", inner)

	assert.Equal(t, "name already exists: constraint failed", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "account not found", New(KindNotFound, "account not found").Error())
}

func TestStorage_NilError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Storage("find", nil))

	err := Storage("find prices", errors.New("locked"))
	assert.EqualError(t, err, "storage error in find prices: locked")
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "storage", KindStorage.String())
}
