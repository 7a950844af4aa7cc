package controllers

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	json "github.com/goccy/go-json"
	"net/http"
	"strconv"
)

type rankedEntry struct {
	Rank  int    `json:"rank"`
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type ApiController struct {
	logger  providers.Logger
	service services.EmojiServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.EmojiServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	gson, _ := json.Marshal(errorResponse{Error: msg})
	writeJSON(w, status, gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	logType := providers.GetLogTypeByRequestType(r.Method)
	result, err := compute()
	if err != nil {
		ac.logger.Errorf(logType, "Failed to build %s: %s", cacheKey, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		ac.logger.Errorf(logType, "Failed to encode %s: %s", cacheKey, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

// GetRanking serves GET /ranking?guild=<id>&range=<start>-<end>.
func (ac *ApiController) GetRanking(w http.ResponseWriter, r *http.Request) {
	guildID, err := parseGuildID(r.URL.Query().Get("guild"))
	if err != nil {
		ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Rejected guild %q: %s", r.URL.Query().Get("guild"), err)
		writeError(w, http.StatusBadRequest, "guild must be a numeric id")
		return
	}
	rr := models.ParseRankRange(r.URL.Query().Get("range"))

	if !ac.service.Has(guildID) {
		writeError(w, http.StatusNotFound, "no data yet")
		return
	}

	cacheKey := "ranking:" + strconv.FormatInt(int64(guildID), 10) + ":" + rr.String()
	ac.serveFromCacheOrCompute(w, r, cacheKey, func() (any, error) {
		entries, _ := ac.service.RankRange(guildID, rr)
		out := make([]rankedEntry, 0, len(entries))
		for i, e := range entries {
			out = append(out, rankedEntry{Rank: i + 1, Emoji: e.Emoji, Count: e.Count})
		}
		return out, nil
	})
}

// GetGuilds serves GET /guilds. Ids are strings to survive JSON number
// precision limits.
func (ac *ApiController) GetGuilds(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "guilds", func() (any, error) {
		guilds := ac.service.Guilds()
		out := make([]string, 0, len(guilds))
		for _, g := range guilds {
			out = append(out, strconv.FormatInt(int64(g), 10))
		}
		return out, nil
	})
}
