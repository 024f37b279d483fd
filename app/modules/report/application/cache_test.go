package reportservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_DropsReportsStartedBeforeAClear(t *testing.T) {
	c := newReportCache(2)
	view := &ReportView{}

	gen := c.generation()
	c.clear()
	assert.False(t, c.put("all-time", view, gen))
	_, ok := c.get("all-time")
	assert.False(t, ok)

	require.True(t, c.put("all-time", view, c.generation()))
	got, ok := c.get("all-time")
	require.True(t, ok)
	assert.Same(t, view, got)
}

func TestReportCache_StartsOverWhenFull(t *testing.T) {
	c := newReportCache(2)
	gen := c.generation()
	require.True(t, c.put("a", &ReportView{}, gen))
	require.True(t, c.put("b", &ReportView{}, gen))
	require.True(t, c.put("c", &ReportView{}, gen))

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 1, c.clear())
}
