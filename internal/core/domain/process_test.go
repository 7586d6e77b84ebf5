package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/telly/internal/core/domain"
)

func TestInvocation_String(t *testing.T) {
	t.Parallel()

	inv := domain.Invocation{
		Path: "/opt/telly/bin/sim",
		Args: []string{"2", "0", "Apple TV 1080p", "9.0", "", "it's"},
		Env:  map[string]string{"B": "2", "A": "one two"},
	}

	assert.Equal(t,
		`A='one two' B=2 /opt/telly/bin/sim 2 0 'Apple TV 1080p' 9.0 '' 'it'\''s'`,
		inv.String())
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stream", domain.ModeStream.String())
	assert.Equal(t, "capture", domain.ModeCapture.String())
	assert.Equal(t, "fire-and-forget", domain.ModeFireAndForget.String())
	assert.True(t, domain.ProcessResult{}.Success())
	assert.False(t, domain.ProcessResult{ExitCode: 1}.Success())
}
