package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/mq"
	"vendora/notifications"
	"vendora/promos"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// validStatuses is the full status enum.
var validStatuses = map[string]bool{
	models.OrderPending:   true,
	models.OrderShipped:   true,
	models.OrderDelivered: true,
	models.OrderCancelled: true,
}

// CanCancel reports whether an order in the given status may be cancelled.
// Only pending orders can.
func CanCancel(status string) bool {
	return status == models.OrderPending
}

func appendHistory(ctx context.Context, orderID, status, note, changedBy string) {
	h := models.OrderHistory{
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
	}
	if _, err := db.OrderHistoryCollection.InsertOne(ctx, h); err != nil {
		log.Println("order history insert error:", err)
	}
}

// recordSales writes one Sale fact row per order line.
func recordSales(ctx context.Context, order models.Order) {
	docs := make([]interface{}, 0, len(order.Lines))
	for _, line := range order.Lines {
		docs = append(docs, models.Sale{
			SaleID:     "s" + utils.GenerateRandomString(12),
			ProductID:  line.ProductID,
			CustomerID: order.UserID,
			Quantity:   line.Quantity,
			TotalPrice: line.Price * float64(line.Quantity),
			SalesDate:  order.CreatedAt,
		})
	}
	if len(docs) == 0 {
		return
	}
	if _, err := db.SalesCollection.InsertMany(ctx, docs); err != nil {
		log.Println("recordSales InsertMany error:", err)
	}
}

// CreateOrder snapshots the user's cart into an order, applies an optional
// promo code, clears the cart, and appends the first history row. Cart
// clear and stock are not atomic with the order write.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Address       string `json:"address"`
		PaymentMethod string `json:"paymentMethod"`
		PromoCode     string `json:"promoCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Address == "" || input.PaymentMethod == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address and payment method are required")
		return
	}

	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read cart")
		return
	}
	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read cart")
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	var lines []models.OrderLine
	var subtotal float64
	for _, it := range items {
		lines = append(lines, models.OrderLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
		subtotal += it.Price * float64(it.Quantity)
	}

	var discount float64
	if input.PromoCode != "" {
		promo, err := promos.Lookup(ctx, input.PromoCode)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid promo code")
			return
		}
		if err := promos.CheckUsable(promo, time.Now()); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		discount = promos.ComputeDiscount(promo, subtotal)
	}

	order := models.Order{
		OrderID:       "o" + utils.GenerateRandomString(12),
		UserID:        userID,
		Lines:         lines,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		PromoCode:     input.PromoCode,
		Discount:      discount,
		Total:         subtotal - discount,
		Status:        models.OrderPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	appendHistory(ctx, order.OrderID, models.OrderPending, "Order placed", userID)
	recordSales(ctx, order)

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("CreateOrder cart clear error:", err)
	}

	notifications.Notify(userID, "Order placed", "Order "+order.OrderID+" has been placed.")
	go mq.Emit(r.Context(), "order-created", models.Event{EntityType: "order", EntityID: order.OrderID, Method: "POST", UserID: userID})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

// GetOrders lists the caller's orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.OrdersCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

// GetAllOrders is the admin listing across users.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 200)
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	total, _ := db.OrdersCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders, "total": total})
}

func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	roles := utils.GetRolesFromRequest(r)
	if order.UserID != userID && !hasRole(roles, "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

// UpdateStatus is the admin transition endpoint. Any member of the enum is
// accepted; only cancellation is restricted, via CancelOrder.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !validStatuses[input.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	orderID := ps.ByName("orderid")
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	appendHistory(ctx, orderID, input.Status, input.Note, utils.GetUserIDFromRequest(r))
	go mq.Emit(r.Context(), "order-updated", models.Event{EntityType: "order", EntityID: orderID, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, nil, "Order status updated", nil)
}

// CancelOrder cancels the caller's order, allowed only while pending.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID := ps.ByName("orderid")
	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !CanCancel(order.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Only pending orders can be cancelled")
		return
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": models.OrderCancelled, "updatedAt": time.Now()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	appendHistory(ctx, orderID, models.OrderCancelled, "Cancelled by customer", userID)
	notifications.Notify(userID, "Order cancelled", "Order "+orderID+" has been cancelled.")
	go mq.Emit(r.Context(), "order-cancelled", models.Event{EntityType: "order", EntityID: orderID, Method: "PUT", UserID: userID})

	utils.SendResponse(w, http.StatusOK, nil, "Order cancelled", nil)
}

// GetOrderHistory lists history rows for an order, newest first.
func GetOrderHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"changedAt": -1})
	cursor, err := db.OrderHistoryCollection.Find(ctx, bson.M{"orderId": ps.ByName("orderid")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve history")
		return
	}
	defer cursor.Close(ctx)

	var history []models.OrderHistory
	if err := cursor.All(ctx, &history); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading history")
		return
	}
	if len(history) == 0 {
		history = []models.OrderHistory{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "history": history})
}

func hasRole(roles []string, want string) bool {
	for _, rr := range roles {
		if rr == want {
			return true
		}
	}
	return false
}
