package stock

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reorderIncrement is the fixed top-up applied by the reorder sweep.
const reorderIncrement = 10

func appendHistory(ctx context.Context, s models.Stock, action string) {
	h := models.StockHistory{
		StockID:   s.StockID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Action:    action,
		ChangedAt: time.Now(),
	}
	if _, err := db.StockHistoryCollection.InsertOne(ctx, h); err != nil {
		log.Println("stock history insert error:", err)
	}
}

// CreateStock stores a new inventory record with its derived status.
func CreateStock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID    string `json:"productId"`
		Quantity     *int   `json:"quantity"`
		ReorderLevel int    `json:"reorderLevel"`
		Warehouse    string `json:"warehouse"`
		Supplier     string `json:"supplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.Quantity == nil || *input.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Product id and quantity are required")
		return
	}

	s := models.Stock{
		StockID:      "st" + utils.GenerateRandomString(12),
		ProductID:    input.ProductID,
		Quantity:     *input.Quantity,
		ReorderLevel: input.ReorderLevel,
		Warehouse:    input.Warehouse,
		Supplier:     input.Supplier,
		Status:       DetermineStockStatus(*input.Quantity),
		LastUpdated:  time.Now(),
		CreatedAt:    time.Now(),
	}

	if _, err := db.StockCollection.InsertOne(ctx, s); err != nil {
		log.Println("CreateStock InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create stock record")
		return
	}

	appendHistory(ctx, s, "Created")
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "stock": s})
}

// UpdateStock merges the incoming fields, re-derives the status from the
// resulting quantity, stamps lastUpdated, and appends an "Updated" history
// row.
func UpdateStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Quantity     *int    `json:"quantity"`
		ReorderLevel *int    `json:"reorderLevel"`
		Warehouse    *string `json:"warehouse"`
		Supplier     *string `json:"supplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	stockID := ps.ByName("stockid")
	var existing models.Stock
	if err := db.StockCollection.FindOne(ctx, bson.M{"stockId": stockID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Stock record not found")
		return
	}

	if input.Quantity != nil {
		if *input.Quantity < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Quantity cannot be negative")
			return
		}
		existing.Quantity = *input.Quantity
	}
	if input.ReorderLevel != nil {
		existing.ReorderLevel = *input.ReorderLevel
	}
	if input.Warehouse != nil {
		existing.Warehouse = *input.Warehouse
	}
	if input.Supplier != nil {
		existing.Supplier = *input.Supplier
	}
	existing.Status = DetermineStockStatus(existing.Quantity)
	existing.LastUpdated = time.Now()

	if _, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockId": stockID},
		bson.M{"$set": bson.M{
			"quantity":     existing.Quantity,
			"reorderLevel": existing.ReorderLevel,
			"warehouse":    existing.Warehouse,
			"supplier":     existing.Supplier,
			"status":       existing.Status,
			"lastUpdated":  existing.LastUpdated,
		}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update stock record")
		return
	}

	appendHistory(ctx, existing, "Updated")
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "stock": existing})
}

// GetStocks lists all inventory records.
func GetStocks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.StockCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stock records")
		return
	}
	defer cursor.Close(ctx)

	var stocks []models.Stock
	if err := cursor.All(ctx, &stocks); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding stock records")
		return
	}
	if len(stocks) == 0 {
		stocks = []models.Stock{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "stocks": stocks})
}

// ReorderSweep tops up every record at or below its reorder level by a
// fixed increment and returns the updated set. No history row is written
// on this path.
func ReorderSweep(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	cursor, err := db.StockCollection.Find(ctx, bson.M{
		"$expr": bson.M{"$lte": bson.A{"$quantity", "$reorderLevel"}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stock records")
		return
	}
	defer cursor.Close(ctx)

	var low []models.Stock
	if err := cursor.All(ctx, &low); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding stock records")
		return
	}

	updated := make([]models.Stock, 0, len(low))
	for _, s := range low {
		s.Quantity += reorderIncrement
		s.Status = DetermineStockStatus(s.Quantity)
		s.LastUpdated = time.Now()

		if _, err := db.StockCollection.UpdateOne(ctx,
			bson.M{"stockId": s.StockID},
			bson.M{"$set": bson.M{
				"quantity":    s.Quantity,
				"status":      s.Status,
				"lastUpdated": s.LastUpdated,
			}},
		); err != nil {
			log.Println("ReorderSweep update error:", err)
			continue
		}
		updated = append(updated, s)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "reordered": updated})
}

// GetStockHistory lists change rows for one stock record, newest first.
func GetStockHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"changedAt": -1})
	cursor, err := db.StockHistoryCollection.Find(ctx, bson.M{"stockId": ps.ByName("stockid")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stock history")
		return
	}
	defer cursor.Close(ctx)

	var history []models.StockHistory
	if err := cursor.All(ctx, &history); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding stock history")
		return
	}
	if len(history) == 0 {
		history = []models.StockHistory{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "history": history})
}

// StatusCheck returns {productId, stockStatus} for every record. Full
// scan, no pagination.
func StatusCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"productId": 1, "status": 1})
	cursor, err := db.StockCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stock records")
		return
	}
	defer cursor.Close(ctx)

	type statusRow struct {
		ProductID   string `json:"productId" bson:"productId"`
		StockStatus string `json:"stockStatus" bson:"status"`
	}
	var rows []statusRow
	if err := cursor.All(ctx, &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding stock records")
		return
	}
	if len(rows) == 0 {
		rows = []statusRow{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "statuses": rows})
}
