package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"platerental/models"
	"platerental/repository"
)

type ClientHandler struct {
	Repo repository.ClientRepository
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		writeFail(w, http.StatusBadRequest, "Client name is required")
		return
	}
	if err := h.Repo.CreateClient(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Client created", c)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListClients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Client{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request, id string) {
	clientID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid client id")
		return
	}
	c, err := h.Repo.GetClient(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		writeError(w, repository.ErrClientNotFound)
		return
	}
	writeOK(w, http.StatusOK, "", c)
}
