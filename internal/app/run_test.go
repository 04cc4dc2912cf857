package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"github.com/Faultbox/heightmap-viewer/internal/engine/terrain"
)

func TestRun_DrivesFramesUntilQuit(t *testing.T) {
	host := newFakeHost()
	host.framesBeforeQuit = 3
	a := NewHeightMapApplication(DefaultOptions(heightmapFS(t, 4, 2)))

	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, Run(host, a, RunOptions{Logger: zap.New(core)}))

	assert.Equal(t, 4, host.polls)
	assert.Equal(t, 3, host.presents)
	assert.Len(t, host.draws, 3)
	assert.Equal(t, []Buffer{1}, host.released)
	assert.InDelta(t, 0.03, float64(a.Camera().Angle), 1e-6)

	assert.Equal(t, 1, logs.FilterMessage("quit requested").Len())
}

func TestRun_StartFailure(t *testing.T) {
	host := newFakeHost()
	a := NewHeightMapApplication(DefaultOptions(memfs.New()))

	err := Run(host, a, RunOptions{Logger: zap.NewNop()})
	assert.ErrorIs(t, err, terrain.ErrIO)
	assert.Zero(t, host.polls)
	assert.Empty(t, host.released)
}
