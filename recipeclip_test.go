package recipeclip_test

import (
	"errors"
	"testing"

	"github.com/recipeclip/recipeclip"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := recipeclip.Errorf(recipeclip.ENOTFOUND, "pattern %q not found", "test")

	assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	assert.Equal(t, "pattern \"test\" not found", recipeclip.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeclip.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, recipeclip.EINTERNAL, recipeclip.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeclip.ErrorMessage(nil))
}
