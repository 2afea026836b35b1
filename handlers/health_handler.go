package handlers

import "net/http"

func Root(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Poker backend is running"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
