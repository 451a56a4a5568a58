package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/notifications"
	"vendora/rdx"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const otpTTL = 5 * time.Minute

func sendLoginOTP(email string) error {
	otp := utils.GenerateRandomDigitString(6)
	if err := rdx.RdxSetWithTTL("otp:"+email, otp, otpTTL); err != nil {
		return err
	}
	return notifications.SendEmail(email, "Your verification code", "Your verification code is: "+otp)
}

// RequestOTP re-sends a two-factor code to an email with a pending login.
func RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}
	input.Email = utils.NormalizeEmail(input.Email)

	if err := sendLoginOTP(input.Email); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Verification code sent", nil)
}

// VerifyOTP completes a two-factor login. The submitted code is checked
// against the value stored in Redis for the address.
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and code are required")
		return
	}
	input.Email = utils.NormalizeEmail(input.Email)

	storedOTP, err := rdx.RdxGet("otp:" + input.Email)
	if err != nil || storedOTP != input.OTP {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}
	rdx.RdxDel("otp:" + input.Email)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	issueSession(w, ctx, user)
}

// ToggleTwoFactor switches two-factor on or off for the logged-in user.
func ToggleTwoFactor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"two_factor": input.Enabled, "updated_at": time.Now()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	utils.SendResponse(w, http.StatusOK, map[string]bool{"twoFactor": input.Enabled}, "Two-factor updated", nil)
}
