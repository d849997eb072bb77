package internal

import (
	"net/http"

	"wsd/internal/controllers"
	"wsd/internal/providers"
	"wsd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(apiController.ReceiveEvents))
	routers.Post("/record", http.HandlerFunc(apiController.RecordToday))
	routers.Get("/map", http.HandlerFunc(apiController.GetMap))
	routers.Get("/heatmap", http.HandlerFunc(apiController.GetHeatmap))
	routers.Post("/clear", http.HandlerFunc(apiController.ClearAll))
	routers.Get("/export", http.HandlerFunc(apiController.Export))
	return routers
}
