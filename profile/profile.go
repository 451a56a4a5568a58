package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/rdx"
	"vendora/uploads"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProfile returns the caller's own account view.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var profile models.UserProfileResponse
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Println("GetProfile:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfile changes name, phone or address on the caller's account.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phone_number"`
		Address     *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if body.Name != nil {
		if strings.TrimSpace(*body.Name) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		update["name"] = *body.Name
	}
	if body.PhoneNumber != nil {
		update["phone_number"] = *body.PhoneNumber
	}
	if body.Address != nil {
		update["address"] = *body.Address
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		log.Println("UpdateProfile:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Profile updated", nil)
}

// UploadAvatar replaces the caller's avatar image.
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	urls, err := uploads.SaveUploadedImages(r, "avatar", "userpic")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar image is required")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": urls[0], "updated_at": time.Now()}})
	if err != nil {
		log.Println("UploadAvatar:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update avatar")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"avatar": urls[0]})
}

// GetUsers lists accounts for administrators, newest first.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", search),
			utils.RegexFilter("email", search),
		}
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetUsers:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	users := []models.UserProfileResponse{}
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("GetUsers decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	total, _ := db.UserCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": users, "total": total})
}

// DeleteAccount removes the caller's account and revokes their session.
func DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		log.Println("DeleteAccount:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if _, err := rdx.RdxHdel("sessions", userID); err != nil {
		log.Println("DeleteAccount session revoke:", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.SendResponse(w, http.StatusOK, nil, "Account deleted", nil)
}
