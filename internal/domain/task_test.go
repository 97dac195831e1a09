package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusParsingResume.Terminal())
	assert.False(t, StatusCallingAI.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusError.Terminal())
}

func TestStageErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("provider unreachable")
	err := NewStageError(ErrKindLLM, cause)

	assert.Equal(t, "LLM_FAILED: provider unreachable", err.Error())
	assert.ErrorIs(t, err, cause)

	var stageErr *StageError
	assert.ErrorAs(t, error(err), &stageErr)
	assert.Equal(t, ErrKindLLM, stageErr.Kind)
}
