package handlers

import (
	"log"
	"net/http"
	"time"

	"devconnect/database"
	"devconnect/middleware"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPosts lists all posts, newest first.
func GetPosts(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := database.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("GetPosts error: %v", err)
		dbError(c)
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		log.Printf("GetPosts decode error: %v", err)
		dbError(c)
		return
	}

	if len(posts) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"nopostsfound": "No posts found"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// fetchPost loads a post by its path id, writing the 404 itself when the id
// is malformed or nothing matches.
func fetchPost(c *gin.Context) (*models.Post, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"nopostfound": "No post found with that ID"})
		return nil, false
	}

	ctx, cancel := opContext()
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"nopostfound": "No post found with that ID"})
		return nil, false
	}
	if err != nil {
		log.Printf("fetch post error: %v", err)
		dbError(c)
		return nil, false
	}

	return &post, true
}

func GetPost(c *gin.Context) {
	post, ok := fetchPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost authors a post as the caller. Name and avatar come from the
// token identity, not the request body.
func CreatePost(c *gin.Context) {
	var in validation.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Post(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	post := models.Post{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Text:     in.Text,
		Name:     c.GetString(middleware.CtxUserName),
		Avatar:   c.GetString(middleware.CtxUserAvatar),
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now(),
	}

	ctx, cancel := opContext()
	defer cancel()

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post; only its author may do so.
func DeletePost(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	post, ok := fetchPost(c)
	if !ok {
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"notauthorized": "User not authorized"})
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if _, err := database.Posts.DeleteOne(ctx, bson.M{"_id": post.ID}); err != nil {
		log.Printf("DeletePost error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func hasLiked(post *models.Post, userID primitive.ObjectID) bool {
	for _, like := range post.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// LikePost records a like, at most once per user. The mutation filter
// re-checks the likes list so two concurrent likes cannot both land.
func LikePost(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	post, ok := fetchPost(c)
	if !ok {
		return
	}

	if hasLiked(post, userID) {
		c.JSON(http.StatusBadRequest, gin.H{"alreadyliked": "User already liked this post"})
		return
	}

	like := models.Like{ID: primitive.NewObjectID(), UserID: userID}

	ctx, cancel := opContext()
	defer cancel()

	filter := bson.M{"_id": post.ID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := database.Posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Lost a race with another like from the same user
		c.JSON(http.StatusBadRequest, gin.H{"alreadyliked": "User already liked this post"})
		return
	}
	if err != nil {
		log.Printf("LikePost error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UnlikePost removes the caller's like.
func UnlikePost(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	post, ok := fetchPost(c)
	if !ok {
		return
	}

	if !hasLiked(post, userID) {
		c.JSON(http.StatusBadRequest, gin.H{"notliked": "You have not yet liked this post"})
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := database.Posts.FindOneAndUpdate(ctx, bson.M{"_id": post.ID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"nopostfound": "No post found with that ID"})
		return
	}
	if err != nil {
		log.Printf("UnlikePost error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AddComment prepends a comment by the caller.
func AddComment(c *gin.Context) {
	var in validation.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Post(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	post, ok := fetchPost(c)
	if !ok {
		return
	}

	comment := models.Comment{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Text:   in.Text,
		Name:   c.GetString(middleware.CtxUserName),
		Avatar: c.GetString(middleware.CtxUserAvatar),
		Date:   time.Now(),
	}

	ctx, cancel := opContext()
	defer cancel()

	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err := database.Posts.FindOneAndUpdate(ctx, bson.M{"_id": post.ID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"nopostfound": "No post found with that ID"})
		return
	}
	if err != nil {
		log.Printf("AddComment error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteComment removes a comment by its id.
func DeleteComment(c *gin.Context) {
	post, ok := fetchPost(c)
	if !ok {
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"commentnotexists": "Comment does not exist"})
		return
	}

	found := false
	for _, comment := range post.Comments {
		if comment.ID == commentID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"commentnotexists": "Comment does not exist"})
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err = database.Posts.FindOneAndUpdate(ctx, bson.M{"_id": post.ID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"nopostfound": "No post found with that ID"})
		return
	}
	if err != nil {
		log.Printf("DeleteComment error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, updated)
}
