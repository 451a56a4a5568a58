package blog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddComment attaches a comment to an existing post.
func AddComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	postID := ps.ByName("postid")

	var body struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Body) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment body is required")
		return
	}

	count, err := db.BlogCollection.CountDocuments(ctx, bson.M{"postId": postID})
	if err != nil {
		log.Println("AddComment lookup:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		CommentID: "cmt" + utils.GenerateRandomString(12),
		PostID:    postID,
		UserID:    userID,
		Body:      body.Body,
		CreatedAt: time.Now(),
	}
	if _, err := db.CommentsCollection.InsertOne(ctx, comment); err != nil {
		log.Println("AddComment:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

// GetComments lists a post's comments, oldest first.
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	postID := ps.ByName("postid")
	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().SetSort(bson.M{"createdAt": 1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.CommentsCollection.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		log.Println("GetComments:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		log.Println("GetComments decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"comments": comments})
}

// DeleteComment removes the caller's own comment.
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	res, err := db.CommentsCollection.DeleteOne(ctx, bson.M{
		"commentId": ps.ByName("commentid"),
		"userId":    userID,
	})
	if err != nil {
		log.Println("DeleteComment:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Comment deleted", nil)
}
