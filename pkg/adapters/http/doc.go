/*
Package http shapes HTTP responses.

Handlers return a Result instead of writing the response. Object and JSON results are
shaped with the request's context (and optional request-derived state) before being
encoded; View results render a template with their data untouched.

	adapter := http.NewAdapter(engine, http.WithRequestState(func(r *nethttp.Request, s domain.State) error {
		s["admin"] = r.Header.Get("X-Admin") == "true"
		return nil
	}))
	router := http.NewRouter(augmenter.Version, func(r chi.Router) {
		r.Get("/products", adapter.Handle(listProducts))
	})
*/
package http
