package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"books-explorer/internal/utils"
)

type AuthHandler struct {
	ConfigCreds struct {
		UserId       string
		Username     string
		UserPassword string
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if a.ConfigCreds.Username == "" ||
		subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.ConfigCreds.Username)) != 1 ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.ConfigCreds.UserPassword)) != 1 {
		utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(a.ConfigCreds.UserId)
	if err != nil {
		utils.JSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, LoginResponse{Token: token})
}
