package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_AddRoutes(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(WithRoutes(Route{
		Path:   "/v1/cron/:type/run",
		Method: http.MethodPost,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusAccepted)
		}),
		Middlewares: []func(http.Handler) http.Handler{mark("primeiro"), mark("segundo")},
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/snapshot-retention/run", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"primeiro", "segundo", "handler"}, order)
	assert.True(t, r.Has(http.MethodPost, "/v1/cron/x/run"))
	assert.False(t, r.Has(http.MethodGet, "/v1/cron/x/run"))
}
