package geo

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nazarpelekh/legit-wearher-bot/internal/logger"
)

func newOfflineGeocoder() *Geocoder {
	log := logger.New(logger.ERROR, logger.TextFormat, io.Discard)
	return NewGeocoder("", "", log)
}

func TestResolveLocationNameWithoutKeyUsesBoxes(t *testing.T) {
	g := newOfflineGeocoder()
	ctx := context.Background()

	assert.Equal(t, "Kyiv, Ukraine", g.ResolveLocationName(ctx, 50.45, 30.52))
	assert.Equal(t, "Lviv region, Ukraine", g.ResolveLocationName(ctx, 49.8, 24.0))
	assert.Equal(t, "Kharkiv, Ukraine", g.ResolveLocationName(ctx, 50.0, 36.2))
	assert.Equal(t, "Ukraine", g.ResolveLocationName(ctx, 48.5, 32.0))
	assert.Equal(t, "Poland", g.ResolveLocationName(ctx, 52.2, 21.0))
}

func TestResolveLocationNameFallsBackToCoordinates(t *testing.T) {
	g := newOfflineGeocoder()

	name := g.ResolveLocationName(context.Background(), 35.68, 139.69)
	assert.Equal(t, "35.6800°, 139.6900°", name)
}
