package middleware

import (
	"net/http"
	"slices"

	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleClient     = 3
)

// RequireRole libera a rota apenas para os roles informados.
// Sem claims no contexto responde 401, com role fora da lista responde 403.
func RequireRole(roles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context()).WithField("path", r.URL.Path)

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logger.Warn("Rota protegida acessada sem token")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(roles, claims.UserRoleID) {
				logger.WithFields(log.Fields{
					"user_id":      claims.UserID,
					"user_role_id": claims.UserRoleID,
				}).Warn("Role sem permissão para a rota")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly cobre upload, retenção e cron
func AdminOnly() func(http.Handler) http.Handler {
	return RequireRole(RoleAdmin)
}

func AdminOrSupervisor() func(http.Handler) http.Handler {
	return RequireRole(RoleAdmin, RoleSupervisor)
}

// AllRoles exige apenas um usuário autenticado
func AllRoles() func(http.Handler) http.Handler {
	return RequireRole(RoleAdmin, RoleSupervisor, RoleClient)
}
