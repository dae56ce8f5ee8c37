package jobkorea_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/jobkorea"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := jobkorea.Errorf(jobkorea.ENOTFOUND, "no content returned from %q", "scrape_as_markdown")

	assert.Equal(t, jobkorea.ENOTFOUND, jobkorea.ErrorCode(err))
	assert.Equal(t, "no content returned from \"scrape_as_markdown\"", jobkorea.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jobkorea.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jobkorea.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", jobkorea.Errorf(jobkorea.EUNAUTHORIZED, "token rejected"))

	assert.Equal(t, jobkorea.EUNAUTHORIZED, jobkorea.ErrorCode(err))
	assert.Equal(t, "token rejected", jobkorea.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, jobkorea.EINTERNAL, jobkorea.ErrorCode(err))
	assert.Equal(t, "Internal error.", jobkorea.ErrorMessage(err))
}

func TestDetailURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.jobkorea.co.kr/Recruit/GI_Read/12345", jobkorea.DetailURL("12345"))
}
