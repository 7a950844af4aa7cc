package providers

import (
	"emojicounter/internal/structures"
	"net/http"
)

// RouterProviderInterface collects the read-only API routes (/ranking,
// /guilds) before they are mounted behind the metrics and gzip middleware.
type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Handle(method, url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.Handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Handle(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  method,
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

// methodHandler answers 405 with an Allow header for any other method, so a
// POST to /ranking never reaches the controller.
func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
