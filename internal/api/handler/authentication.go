package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao obter dados do usuário")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao obter dados do usuário", nil)
			return
		}
		if user == nil {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// handleLoginError devolve sempre a mesma mensagem para falhas de credencial
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) && authenticating.IsCredentialsError(err) {
		log.ForContext(r.Context()).WithField("user_id", authErr.UserID).Warn("Tentativa de login recusada")
		apiErrors.WriteError(w, authErr.Code, "Credenciais inválidas", nil)
		return
	}

	writeServiceError(w, r, err, "Erro interno ao realizar login")
}
