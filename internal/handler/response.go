package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

const msgInvalidBody = "Invalid request body."

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Success: status < http.StatusBadRequest, Message: message})
}

func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, Response{Success: true, Data: data})
}
