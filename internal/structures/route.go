package structures

import "net/http"

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
