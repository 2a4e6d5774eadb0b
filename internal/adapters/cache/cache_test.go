package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary-remediation-service/internal/adapters/repositories"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/db"
	"itinerary-remediation-service/internal/ports"
)

func TestUniqueKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueKeys([]string{" a", "", "b", "a ", "  "}))
	assert.Empty(t, uniqueKeys(nil))
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, DefaultTTL.Seconds(), ttlSeconds(0))
	assert.Equal(t, 90.0, ttlSeconds(90*time.Second))
}

func TestNilDB(t *testing.T) {
	ctx := context.Background()
	_, err := (&SQLDistanceCache{}).GetMany(ctx, "o", []string{"d"})
	assert.Error(t, err)
	assert.Error(t, (&SQLGeocodeCache{}).PutMany(ctx, map[string]domain.Coordinates{"x": {Lat: 1, Lng: 1}}))
}

// TestPostgresCaches runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresCaches(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn))

	dc := NewSQLDistanceCache(conn, nil)
	origin := "foot-walking|cache-test|" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, dc.PutMany(ctx, origin, map[string]ports.DistanceResult{
		"35.71480,139.79670": {DistanceMeters: 2100, DurationSeconds: 1560},
		"35.71560,139.77450": {DistanceMeters: 900, DurationSeconds: 700},
	}))
	hits, err := dc.GetMany(ctx, origin, []string{"35.71480,139.79670", "35.00000,135.00000"})
	require.NoError(t, err)
	assert.Equal(t, map[string]ports.DistanceResult{"35.71480,139.79670": {DistanceMeters: 2100, DurationSeconds: 1560}}, hits)

	gc := NewSQLGeocodeCache(conn, nil)
	addr := "cache-test " + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, gc.PutMany(ctx, map[string]domain.Coordinates{addr: {Lat: 35.0394, Lng: 135.7292}, "null island": {}}))
	coords, err := gc.GetMany(ctx, []string{addr, "null island"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{addr: {Lat: 35.0394, Lng: 135.7292}}, coords)
}
