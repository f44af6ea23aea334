package grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingDriver struct {
	ticks int
}

func (d *countingDriver) Initialize()      {}
func (d *countingDriver) OnConfigChanged() {}
func (d *countingDriver) Tick() bool {
	d.ticks++
	return false
}

func TestRunTicksUntilDone(t *testing.T) {
	d := &countingDriver{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Run(ctx, d, time.Millisecond)

	assert.Equal(t, context.DeadlineExceeded, err)
	assert.True(t, d.ticks > 0)
}

func TestGridIsDriver(t *testing.T) {
	var d Driver = New(&Config{Width: 2, Height: 2, Mode: Deferred}, nil)

	assert.False(t, d.Tick())
	d.OnConfigChanged()
	assert.True(t, d.Tick())
	assert.False(t, d.Tick())
}

func TestOnConfigChangedImmediate(t *testing.T) {
	g := New(&Config{Width: 2, Height: 2, Mode: Immediate}, nil)

	g.OnConfigChanged()

	assert.Equal(t, 4, len(g.Tiles()))
	assert.False(t, g.RebuildNeeded())
	assert.False(t, g.Tick())
}
