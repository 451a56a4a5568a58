package middleware

import (
	"net/http"

	"vendora/utils"

	"github.com/julienschmidt/httprouter"
)

// IssueCSRF hands out a double-submit CSRF token: set as a cookie and
// echoed in the body so the client can replay it in X-CSRF-Token.
func IssueCSRF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := utils.GenerateRandomString(24)
	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"csrf_token": token,
	})
}

// VerifyCSRF rejects mutating requests whose X-CSRF-Token header does not
// match the csrf_token cookie.
func VerifyCSRF(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie("csrf_token")
		if err != nil || cookie.Value == "" || cookie.Value != r.Header.Get("X-CSRF-Token") {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}
