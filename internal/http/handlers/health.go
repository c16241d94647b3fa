package handlers

import "net/http"

func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "HookFlow API is Live",
		"version": "1.0.0",
	})
}
