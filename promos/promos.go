package promos

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInactive = errors.New("promo code inactive")
	ErrExpired  = errors.New("promo code expired")
)

// ComputeDiscount returns the absolute discount for a cart total. A
// percentage code of value 10 on a total of 200 yields 20; a fixed code
// yields min(value, total).
func ComputeDiscount(promo models.PromoCode, total float64) float64 {
	switch promo.DiscountType {
	case models.DiscountPercentage:
		return total * promo.DiscountValue / 100
	case models.DiscountFixed:
		if promo.DiscountValue > total {
			return total
		}
		return promo.DiscountValue
	default:
		return 0
	}
}

// CheckUsable rejects inactive or expired codes regardless of the math.
func CheckUsable(promo models.PromoCode, now time.Time) error {
	if !promo.Active {
		return ErrInactive
	}
	if now.After(promo.ExpirationDate) {
		return ErrExpired
	}
	return nil
}

// Lookup fetches a promo code, normalized to lowercase.
func Lookup(ctx context.Context, code string) (models.PromoCode, error) {
	var promo models.PromoCode
	err := db.PromoCollection.FindOne(ctx,
		bson.M{"code": strings.ToLower(strings.TrimSpace(code))}).Decode(&promo)
	return promo, err
}

// CreatePromo inserts a new code; the code itself must be unique.
func CreatePromo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var promo models.PromoCode
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	promo.Code = strings.ToLower(strings.TrimSpace(promo.Code))
	if promo.Code == "" || promo.DiscountValue <= 0 ||
		(promo.DiscountType != models.DiscountPercentage && promo.DiscountType != models.DiscountFixed) {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}
	if promo.DiscountType == models.DiscountPercentage && promo.DiscountValue > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	if err := db.PromoCollection.FindOne(ctx, bson.M{"code": promo.Code}).Err(); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Code already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	promo.CreatedAt = time.Now()
	if _, err := db.PromoCollection.InsertOne(ctx, promo); err != nil {
		log.Println("CreatePromo InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create promo code")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "promo": promo})
}

func GetPromos(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.PromoCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching promo codes")
		return
	}
	defer cursor.Close(ctx)

	var promos []models.PromoCode
	if err := cursor.All(ctx, &promos); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding promo codes")
		return
	}
	if len(promos) == 0 {
		promos = []models.PromoCode{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "promos": promos})
}

// UpdatePromo merges value/expiry/active changes onto an existing code.
func UpdatePromo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		DiscountValue  *float64   `json:"discountValue"`
		ExpirationDate *time.Time `json:"expirationDate"`
		Active         *bool      `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{}
	if input.DiscountValue != nil {
		set["discountValue"] = *input.DiscountValue
	}
	if input.ExpirationDate != nil {
		set["expirationDate"] = *input.ExpirationDate
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	code := strings.ToLower(ps.ByName("code"))
	res, err := db.PromoCollection.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update promo code")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Promo code not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Promo code updated", nil)
}

func DeletePromo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	code := strings.ToLower(ps.ByName("code"))
	res, err := db.PromoCollection.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete promo code")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Promo code not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Promo code deleted", nil)
}

// ApplyPromo validates a code against a cart total and returns the
// discount computed at apply time; nothing is stored.
func ApplyPromo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Code  string  `json:"code"`
		Total float64 `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Code == "" || input.Total < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Code and total are required")
		return
	}

	promo, err := Lookup(ctx, input.Code)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Promo code not found")
		return
	}
	if err := CheckUsable(promo, time.Now()); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	discount := ComputeDiscount(promo, input.Total)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"code":     promo.Code,
		"discount": discount,
		"total":    input.Total - discount,
	})
}
