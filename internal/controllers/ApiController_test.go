package controllers

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	"emojicounter/internal/testutil"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() (*ApiController, *services.EmojiService, *testutil.MockCache) {
	svc := services.NewEmojiService(testutil.NewMockSnapshotWriter(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	cache := testutil.NewMockCache()
	return NewApiController(&testutil.MockLogger{}, svc, cache), svc, cache
}

func seedGuild(svc *services.EmojiService) {
	svc.PutGuild(555, models.NewCounterFromEntries([]models.Entry{
		{Emoji: "😀", Count: 3},
		{Emoji: "😂", Count: 5},
		{Emoji: "<:foo:1>", Count: 1},
	}))
}

func get(ac func(http.ResponseWriter, *http.Request), url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	ac(rr, req)
	return rr
}

func TestGetRanking_All(t *testing.T) {
	ac, svc, _ := newTestController()
	seedGuild(svc)

	rr := get(ac.GetRanking, "/ranking?guild=555")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp []rankedEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []rankedEntry{
		{Rank: 1, Emoji: "😂", Count: 5},
		{Rank: 1, Emoji: "😀", Count: 3},
		{Rank: 2, Emoji: "<:foo:1>", Count: 1},
	}, resp)
}

func TestGetRanking_Window(t *testing.T) {
	ac, svc, _ := newTestController()
	seedGuild(svc)

	rr := get(ac.GetRanking, "/ranking?guild=555&range=2-10")

	var resp []rankedEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []rankedEntry{
		{Rank: 2, Emoji: "😀", Count: 3},
		{Rank: 3, Emoji: "<:foo:1>", Count: 1},
	}, resp)
}

func TestGetRanking_InvalidWindowIsEmptyArray(t *testing.T) {
	ac, svc, _ := newTestController()
	seedGuild(svc)

	rr := get(ac.GetRanking, "/ranking?guild=555&range=5-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestGetRanking_UnknownGuild(t *testing.T) {
	ac, svc, _ := newTestController()

	rr := get(ac.GetRanking, "/ranking?guild=1")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"no data yet"}`, rr.Body.String())
	assert.False(t, svc.Has(1))
}

func TestGetRanking_BadGuild(t *testing.T) {
	ac, _, _ := newTestController()

	assert.Equal(t, http.StatusBadRequest, get(ac.GetRanking, "/ranking").Code)
	assert.Equal(t, http.StatusBadRequest, get(ac.GetRanking, "/ranking?guild=abc").Code)

	logger := ac.logger.(*testutil.MockLogger)
	require.Equal(t, 2, logger.Count("debug"))
	for _, l := range logger.Logs {
		assert.Equal(t, providers.TypeGet, l.Type)
	}
}

func TestGetRanking_UsesCache(t *testing.T) {
	ac, svc, cache := newTestController()
	seedGuild(svc)

	get(ac.GetRanking, "/ranking?guild=555&range=1-1")
	require.Contains(t, cache.Data, "ranking:555:1-1")

	cache.Data["ranking:555:1-1"] = []byte(`["cached"]`)
	rr := get(ac.GetRanking, "/ranking?guild=555&range=1-1")
	assert.JSONEq(t, `["cached"]`, rr.Body.String())
}

func TestGetGuilds(t *testing.T) {
	ac, svc, _ := newTestController()
	svc.Ensure(1234567890123456789)
	svc.Ensure(5)

	rr := get(ac.GetGuilds, "/guilds")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["5","1234567890123456789"]`, rr.Body.String())
}

func TestGetGuilds_Empty(t *testing.T) {
	ac, _, _ := newTestController()
	rr := get(ac.GetGuilds, "/guilds")
	assert.JSONEq(t, `[]`, rr.Body.String())
}
