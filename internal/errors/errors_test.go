package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("topN must be positive")
	wrapped := Wrap(base, "frequency request rejected")

	require.Error(t, wrapped)
	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "frequency request rejected: topN must be positive", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	wrapped := Wrapf(cause, "writing report %s", "overview")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, cause, stderrors.Unwrap(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, fmt.Errorf("no such sheet"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{ParseError("apps.csv", fmt.Errorf("eof")), http.StatusBadRequest},
		{NotFound("report type"), http.StatusNotFound},
		{UnsupportedFormat("pdf"), http.StatusUnsupportedMediaType},
		{NoData("dataset not loaded"), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
