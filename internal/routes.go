package internal

import (
	"emojicounter/internal/controllers"
	"emojicounter/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/ranking", http.HandlerFunc(apiController.GetRanking))
	routers.Get("/guilds", http.HandlerFunc(apiController.GetGuilds))
	return routers
}
