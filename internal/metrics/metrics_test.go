package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorCounts(t *testing.T) {
	c := New(nil)

	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()
	c.Move()
	c.Move()
	c.Move()
	c.Fell()
	c.LevelCleared(0, 12)
	c.LevelCleared(0, 30)
	c.LevelCleared(2, 7)
	c.CampaignCompleted()

	out := scrape(t, c)
	for _, line := range []string{
		"cuboid_sessions_total 2",
		"cuboid_sessions_active 1",
		"cuboid_moves_total 3",
		"cuboid_falls_total 1",
		`cuboid_levels_cleared_total{level="1"} 2`,
		`cuboid_levels_cleared_total{level="3"} 1`,
		"cuboid_campaigns_completed_total 1",
		"cuboid_level_clear_seconds_count 3",
	} {
		assert.True(t, strings.Contains(out, line), "missing %q in:\n%s", line, out)
	}
}

func TestCollectorsAreIsolated(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg)
	b := New(nil)

	a.Move()
	assert.Contains(t, scrape(t, a), "cuboid_moves_total 1")
	assert.Contains(t, scrape(t, b), "cuboid_moves_total 0")

	assert.Panics(t, func() { New(reg) }, "double registration must panic")
}
