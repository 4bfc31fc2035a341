package api

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/sim"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	g := world.NewGrid(8, 8, 0.0, entropy.NewSource(9))
	g.SetTile(1, 1, tile.PowerPlant, world.LayerSurface)
	g.SetTile(2, 1, tile.PowerLine, world.LayerAir)

	s := sim.New(g, entropy.NewSource(9))
	s.UpdatePowerGrid()
	s.UpdateStats()

	return &Server{Sim: s, Mu: &sync.Mutex{}}
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.handleStatus(rec, httptest.NewRequest("GET", "/api/v1/status", nil))

	require.Equal(t, 200, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(8), body["width"])
	assert.Equal(t, srv.Sim.Session.String(), body["session"])
}

func TestHandleMap(t *testing.T) {
	srv := testServer(t)

	t.Run("surface by default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.handleMap(rec, httptest.NewRequest("GET", "/api/v1/map", nil))

		require.Equal(t, 200, rec.Code)
		var body struct {
			Layer int         `json:"layer"`
			Tiles []tile.Type `json:"tiles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, world.LayerSurface, body.Layer)
		require.Len(t, body.Tiles, 64)
		// Row-major: (1,1) is index 9.
		assert.Equal(t, tile.PowerPlant, body.Tiles[9])
	})

	t.Run("rejects junk layer", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.handleMap(rec, httptest.NewRequest("GET", "/api/v1/map?layer=x", nil))
		assert.Equal(t, 400, rec.Code)
	})
}

func TestHandleOverlays(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.handleOverlays(rec, httptest.NewRequest("GET", "/api/v1/overlays", nil))

	require.Equal(t, 200, rec.Code)
	var body struct {
		Powered []sim.Coord `json:"powered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Powered, sim.Coord{X: 1, Y: 1})
	assert.Contains(t, body.Powered, sim.Coord{X: 2, Y: 1})
}

func TestHandleTile(t *testing.T) {
	srv := testServer(t)

	t.Run("detail includes capability metadata", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/tile/1/1", nil)
		srv.handleTile(rec, req)

		require.Equal(t, 200, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Power Plant", body["name"])
		assert.Equal(t, float64(1000), body["cost"])
		assert.Equal(t, true, body["powered"])
	})

	t.Run("bad path is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/tile/1", nil)
		srv.handleTile(rec, req)
		assert.Equal(t, 400, rec.Code)
	})
}
