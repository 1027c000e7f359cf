package handlers

import (
	"github.com/go-chi/chi/v5"

	"fairweather/internal/core"
)

// Registrars returns route registrars for every handler group, ready for
// core.Server.V1RouteRegistrars.
func Registrars(activities *ActivityHandler, suggestions *SuggestionHandler, conds *ConditionHandler) []core.RouteRegistrar {
	return []core.RouteRegistrar{
		func(r chi.Router) { r.Route("/activities", activities.RegisterRoutes) },
		func(r chi.Router) { r.Route("/suggestions", suggestions.RegisterRoutes) },
		func(r chi.Router) { r.Route("/conditions", conds.RegisterRoutes) },
	}
}
