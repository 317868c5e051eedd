package handler

import (
	"net/http"

	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

// CreateUser cria um novo usuário. A senha chega em texto no campo "password".
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *domain.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil || user == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), user)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar usuário")
			return
		}

		log.ForContext(r.Context()).WithField("user_id", created.ID).Info("Usuário criado")

		writeJSON(w, http.StatusCreated, created)
	}
}
