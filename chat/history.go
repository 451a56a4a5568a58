package chat

import (
	"context"
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

// GetRoomMessages returns stored messages for a room, newest first.
// Messages still sitting in the redis buffer are not included.
func GetRoomMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	room := ps.ByName("room")
	skip, limit := utils.ParsePagination(r, 30, 100)

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"room": room}, opts)
	if err != nil {
		log.Println("GetRoomMessages:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		log.Println("GetRoomMessages decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"room": room, "messages": messages})
}
