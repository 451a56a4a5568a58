package pay

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
	"vendora/paypal"
	"vendora/rdx"
	"vendora/stripe"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const confirmLockTTL = 30 * time.Second

// acquireConfirmLock takes a short redis lock so concurrent confirms of
// the same payment cannot both apply.
func acquireConfirmLock(ctx context.Context, paymentID string) (bool, error) {
	return rdx.Conn.SetNX(ctx, "payment_lock:"+paymentID, "1", confirmLockTTL).Result()
}

func releaseConfirmLock(ctx context.Context, paymentID string) {
	if err := rdx.Conn.Del(ctx, "payment_lock:"+paymentID).Err(); err != nil {
		log.Printf("releaseConfirmLock: payment %s err=%v", paymentID, err)
	}
}

// payableOrder loads a pending order owned by userID.
func payableOrder(ctx context.Context, orderID, userID string) (models.Order, bool) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order)
	if err != nil {
		return order, false
	}
	return order, order.Status == models.OrderPending
}

func insertPayment(ctx context.Context, provider, providerID string, order models.Order, currency string) (models.Payment, error) {
	now := time.Now()
	payment := models.Payment{
		PaymentID:  utils.GetUUID(),
		Provider:   provider,
		ProviderID: providerID,
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Amount:     order.Total,
		Currency:   currency,
		Status:     models.PaymentCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := db.PaymentsCollection.InsertOne(ctx, payment)
	return payment, err
}

// CreateStripeSession opens a hosted-checkout session for a pending order
// and mirrors it as a created payment.
func CreateStripeSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		OrderID  string `json:"orderId"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId is required")
		return
	}
	if body.Currency == "" {
		body.Currency = "USD"
	}

	order, ok := payableOrder(ctx, body.OrderID, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Order not found or not payable")
		return
	}

	session, err := stripe.CreateCheckoutSession(order.OrderID, order.Total, body.Currency)
	if err != nil {
		log.Println("CreateStripeSession:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	payment, err := insertPayment(ctx, "stripe", session.SessionID, order, body.Currency)
	if err != nil {
		log.Println("CreateStripeSession insert:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	mq.Emit(ctx, "payment-created", models.Event{EntityType: "payment", EntityID: payment.PaymentID, UserID: userID})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"paymentId": payment.PaymentID,
		"sessionId": session.SessionID,
		"url":       session.URL,
	})
}

// ConfirmStripePayment settles a checkout session. Repeated confirms of
// a settled payment return the stored outcome unchanged.
func ConfirmStripePayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		SessionID string `json:"sessionId"`
		Outcome   string `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	settle(ctx, w, r, "stripe", body.SessionID, body.Outcome)
}

// CreatePayPalOrder opens a provider order for a pending store order.
func CreatePayPalOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		OrderID  string `json:"orderId"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId is required")
		return
	}
	if body.Currency == "" {
		body.Currency = "USD"
	}

	order, ok := payableOrder(ctx, body.OrderID, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Order not found or not payable")
		return
	}

	provOrder, err := paypal.CreateOrder(order.OrderID, order.Total, body.Currency)
	if err != nil {
		log.Println("CreatePayPalOrder:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create provider order")
		return
	}

	payment, err := insertPayment(ctx, "paypal", provOrder.ProviderOrderID, order, body.Currency)
	if err != nil {
		log.Println("CreatePayPalOrder insert:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	mq.Emit(ctx, "payment-created", models.Event{EntityType: "payment", EntityID: payment.PaymentID, UserID: userID})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"paymentId":       payment.PaymentID,
		"providerOrderId": provOrder.ProviderOrderID,
		"approveUrl":      provOrder.ApproveURL,
	})
}

// CapturePayPalOrder settles an approved provider order.
func CapturePayPalOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ProviderOrderID string `json:"providerOrderId"`
		Outcome         string `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProviderOrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "providerOrderId is required")
		return
	}

	settle(ctx, w, r, "paypal", body.ProviderOrderID, body.Outcome)
}

// settle moves a payment created -> pending -> success|rejected under a
// redis lock keyed by the payment id.
func settle(ctx context.Context, w http.ResponseWriter, r *http.Request, provider, providerID, outcome string) {
	userID := utils.GetUserIDFromRequest(r)

	var payment models.Payment
	err := db.PaymentsCollection.FindOne(ctx, bson.M{
		"provider":   provider,
		"providerId": providerID,
		"userId":     userID,
	}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if err != nil {
		log.Println("settle lookup:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if payment.Status == models.PaymentSuccess || payment.Status == models.PaymentRejected {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"paymentId": payment.PaymentID, "status": payment.Status})
		return
	}

	locked, err := acquireConfirmLock(ctx, payment.PaymentID)
	if err != nil {
		log.Println("settle lock:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !locked {
		utils.RespondWithError(w, http.StatusConflict, "Payment is being processed")
		return
	}
	defer releaseConfirmLock(ctx, payment.PaymentID)

	final := models.PaymentSuccess
	if outcome == "rejected" {
		final = models.PaymentRejected
	}

	now := time.Now()
	_, err = db.PaymentsCollection.UpdateOne(ctx,
		bson.M{"paymentId": payment.PaymentID},
		bson.M{"$set": bson.M{"status": models.PaymentPending, "updatedAt": now}})
	if err == nil {
		_, err = db.PaymentsCollection.UpdateOne(ctx,
			bson.M{"paymentId": payment.PaymentID},
			bson.M{"$set": bson.M{"status": final, "updatedAt": time.Now()}})
	}
	if err != nil {
		log.Println("settle update:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	if final == models.PaymentSuccess {
		notifications.Notify(payment.UserID, "Payment received",
			"Payment for order "+payment.OrderID+" succeeded")
	} else {
		notifications.Notify(payment.UserID, "Payment failed",
			"Payment for order "+payment.OrderID+" was rejected")
	}

	mq.Emit(ctx, "payment-"+final, models.Event{EntityType: "payment", EntityID: payment.PaymentID, UserID: payment.UserID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"paymentId": payment.PaymentID, "status": final})
}

// GetPayments lists the caller's payment mirrors, newest first.
func GetPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 50)

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.PaymentsCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("GetPayments:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		log.Println("GetPayments decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"payments": payments})
}
