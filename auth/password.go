package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/notifications"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// ForgotPassword stores a single-use, time-boxed reset token on the user
// and emails it. The response does not disclose whether the email exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}
	input.Email = utils.NormalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.SendResponse(w, http.StatusOK, nil, "If the address exists, a reset link has been sent", nil)
		return
	}

	token, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate reset token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"reset_token":  hashToken(token),
			"reset_expiry": time.Now().Add(resetTokenTTL),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store reset token")
		return
	}

	if err := notifications.SendEmail(user.Email, "Password reset",
		"Use this token to reset your password: "+token); err != nil {
		log.Printf("ForgotPassword: email send failed for %s: %v", user.UserID, err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "If the address exists, a reset link has been sent", nil)
}

// ResetPassword consumes a reset token and sets a new password hash.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Email == "" || input.Token == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email, token and new password are required")
		return
	}
	input.Email = utils.NormalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	if user.ResetToken == "" || hashToken(input.Token) != user.ResetToken || time.Now().After(user.ResetExpiry) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	// Clearing the token makes it single-use.
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"password_hash": string(hashed), "updated_at": time.Now()},
			"$unset": bson.M{"reset_token": "", "reset_expiry": ""},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password updated", nil)
}
