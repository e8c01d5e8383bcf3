package handlers

import (
	"log"
	"net/http"
	"time"

	"devconnect/auth"
	"devconnect/database"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register creates a new user. The avatar comes from gravatar, the password
// is stored only as a bcrypt hash.
func Register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Register(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	err := database.Users.FindOne(ctx, bson.M{"email": in.Email}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"email": "Email already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Register lookup error: %v", err)
		dbError(c)
		return
	}

	hash, err := creds.HashPassword(in.Password)
	if err != nil {
		log.Printf("Register hash error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   auth.GravatarURL(in.Email),
		Date:     time.Now(),
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		// Unique index backstop for two concurrent registrations
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"email": "Email already exists"})
			return
		}
		log.Printf("Register insert error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login checks credentials and issues a bearer token embedding
// {id, name, avatar}.
func Login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Login(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": in.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"email": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Login lookup error: %v", err)
		dbError(c)
		return
	}

	if !creds.CheckPassword(user.Password, in.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"password": "Incorrect Password"})
		return
	}

	token, err := creds.IssueToken(user.ID.Hex(), user.Name, user.Avatar)
	if err != nil {
		log.Printf("Login token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   "bearer " + token,
	})
}

// CurrentUser returns the authenticated user's basic record.
func CurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		return
	}
	if err != nil {
		log.Printf("CurrentUser lookup error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	})
}
