package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/internal/adapters/linear"
)

func TestRenderer_Lifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)

	require.NoError(t, r.Start(context.Background()))

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnPlanEmit([]string{"build:device", "archive", "device"}, []string{"device"})
	r.OnTaskStart("s1", "", "build:device", start)
	r.OnTaskComplete("s1", start.Add(1500*time.Millisecond), nil)
	r.OnTaskStart("s2", "", "archive", start)
	r.OnTaskComplete("s2", start.Add(250*time.Millisecond), errors.New("archive failed"))
	r.OnTaskComplete("unknown", start, nil)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	g := goldie.New(t)
	g.Assert(t, "lifecycle", buf.Bytes())
}

func TestRenderer_NilWriterDefaultsToStderr(t *testing.T) {
	assert.NotNil(t, linear.NewRenderer(nil))
}
