package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler group a service mounts.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
