package storagemodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyListOptions(t *testing.T) {
	o := ApplyListOptions()
	assert.Equal(t, 100, o.BufferSize)
	assert.Equal(t, int32(100), o.PageSize)
	assert.Nil(t, o.ProgressHandler)

	var seen StreamProgress
	o = ApplyListOptions(WithBufferSize(5), WithPageSize(10), WithProgressHandler(func(p StreamProgress) { seen = p }))
	assert.Equal(t, 5, o.BufferSize)
	assert.Equal(t, int32(10), o.PageSize)
	o.ProgressHandler(StreamProgress{ItemsProcessed: 3})
	assert.Equal(t, int64(3), seen.ItemsProcessed)

	o = ApplyListOptions(WithBufferSize(-1), WithPageSize(0))
	assert.Equal(t, DefaultListOptions().BufferSize, o.BufferSize)
	assert.Equal(t, DefaultListOptions().PageSize, o.PageSize)
}

func TestDictionaryEntityKey(t *testing.T) {
	d := NewDictionaryEntity("e1", "p1", 42)
	assert.Equal(t, Key{PartitionID: "p1", EntityID: "e1"}, d.Key())
	assert.Equal(t, 42, d.Entity)
}

func TestProgress(t *testing.T) {
	p := Progress(50, 2, time.Now().Add(-time.Second))
	assert.Equal(t, int64(50), p.ItemsProcessed)
	assert.Equal(t, 2, p.PagesProcessed)
	assert.Greater(t, p.CurrentRate, 0.0)
}
