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
	"vendora/mq"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePost inserts a blog post authored by the caller.
func CreatePost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Title string   `json:"title"`
		Body  string   `json:"body"`
		Tags  []string `json:"tags"`
		Image string   `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Body) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and body are required")
		return
	}

	now := time.Now()
	post := models.BlogPost{
		PostID:    "post" + utils.GenerateRandomString(12),
		AuthorID:  userID,
		Title:     body.Title,
		Body:      body.Body,
		Tags:      body.Tags,
		Image:     body.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.BlogCollection.InsertOne(ctx, post); err != nil {
		log.Println("CreatePost:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	mq.Emit(ctx, "post-created", models.Event{EntityType: "post", EntityID: post.PostID, UserID: userID})
	utils.RespondWithJSON(w, http.StatusCreated, post)
}

// GetPosts lists posts, newest first, optionally filtered by tag.
func GetPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 50)

	filter := bson.M{}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.BlogCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetPosts:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		log.Println("GetPosts decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	total, _ := db.BlogCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"posts": posts, "total": total})
}

// GetPost returns one post with its author name populated.
func GetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var post models.BlogPost
	err := db.BlogCollection.FindOne(ctx, bson.M{"postId": ps.ByName("postid")}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Println("GetPost:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var author struct {
		Name string `bson:"name"`
	}
	authorName := "unknown"
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": post.AuthorID},
		options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&author); err == nil {
		authorName = author.Name
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"post": post, "authorName": authorName})
}

// UpdatePost lets the author change title, body, tags or image.
func UpdatePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	postID := ps.ByName("postid")

	var body struct {
		Title *string   `json:"title"`
		Body  *string   `json:"body"`
		Tags  *[]string `json:"tags"`
		Image *string   `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		update["title"] = *body.Title
	}
	if body.Body != nil {
		if strings.TrimSpace(*body.Body) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Body cannot be empty")
			return
		}
		update["body"] = *body.Body
	}
	if body.Tags != nil {
		update["tags"] = *body.Tags
	}
	if body.Image != nil {
		update["image"] = *body.Image
	}

	res, err := db.BlogCollection.UpdateOne(ctx,
		bson.M{"postId": postID, "authorId": userID},
		bson.M{"$set": update})
	if err != nil {
		log.Println("UpdatePost:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	mq.Emit(ctx, "post-updated", models.Event{EntityType: "post", EntityID: postID, UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Post updated", nil)
}

// DeletePost removes the author's post and its comments.
func DeletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	postID := ps.ByName("postid")

	res, err := db.BlogCollection.DeleteOne(ctx, bson.M{"postId": postID, "authorId": userID})
	if err != nil {
		log.Println("DeletePost:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	if _, err := db.CommentsCollection.DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
		log.Println("DeletePost comments:", err)
	}

	mq.Emit(ctx, "post-deleted", models.Event{EntityType: "post", EntityID: postID, UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Post deleted", nil)
}
