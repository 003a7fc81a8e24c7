package httpclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonAcceptsWithinBudget(t *testing.T) {
	assert.NoError(t, Reason(strings.Repeat("a", maxReasonLength)))
	assert.NoError(t, Reason(""))
}

func TestReasonRejectsOverBudget(t *testing.T) {
	err := Reason(strings.Repeat("a", maxReasonLength+1))
	assert.Error(t, err)

	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindValidation, cerr.Kind())
}

func TestReasonCountsCodepointsNotBytes(t *testing.T) {
	// Each "é" is two bytes but one codepoint; 512 of them must pass.
	assert.NoError(t, Reason(strings.Repeat("é", maxReasonLength)))
	assert.Error(t, Reason(strings.Repeat("é", maxReasonLength+1)))
}
