package handlers

import (
	"net/http"
	"testing"
	"time"

	"devconnect/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func profileRouter(userID primitive.ObjectID) *gin.Engine {
	router := gin.New()
	router.GET("/api/profile", asUser(userID), GetCurrentProfile)
	router.POST("/api/profile", asUser(userID), UpsertProfile)
	router.POST("/api/profile/experience", asUser(userID), AddExperience)
	router.DELETE("/api/profile/experience/:exp_id", asUser(userID), DeleteExperience)
	return router
}

func profileDoc(userID primitive.ObjectID, handle string, experience bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "userId", Value: userID},
		{Key: "handle", Value: handle},
		{Key: "status", Value: "Developer"},
		{Key: "skills", Value: bson.A{"Go", "MongoDB"}},
		{Key: "experience", Value: experience},
		{Key: "education", Value: bson.A{}},
		{Key: "date", Value: primitive.NewDateTimeFromTime(time.Now())},
	}
}

func TestGetCurrentProfileNone(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no profile yet", func(mt *mtest.T) {
		database.Profiles = mt.Coll
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.profiles", mtest.FirstBatch))

		w := performJSON(profileRouter(primitive.NewObjectID()), http.MethodGet, "/api/profile", nil)

		assert.Equal(mt.T, http.StatusNotFound, w.Code)
		body := decodeBody(mt.T, w)
		assert.Equal(mt.T, "There is no profile for this user", body["noprofile"])
	})
}

func TestUpsertProfileValidation(t *testing.T) {
	w := performJSON(profileRouter(primitive.NewObjectID()), http.MethodPost, "/api/profile",
		map[string]string{"website": "not a url"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Profile handle is required", body["handle"])
	assert.Equal(t, "Status field is required", body["status"])
	assert.Equal(t, "Skills field is required", body["skills"])
	assert.Equal(t, "Not a valid URL", body["website"])
}

func TestUpsertProfileHandleTaken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("handle owned by someone else", func(mt *mtest.T) {
		database.Profiles = mt.Coll
		mt.AddMockResponses(
			// No profile for the caller yet
			mtest.CreateCursorResponse(0, "devconnect.profiles", mtest.FirstBatch),
			// But the handle is occupied
			mtest.CreateCursorResponse(1, "devconnect.profiles", mtest.FirstBatch,
				profileDoc(primitive.NewObjectID(), "gopher", bson.A{})),
		)

		w := performJSON(profileRouter(primitive.NewObjectID()), http.MethodPost, "/api/profile",
			map[string]string{
				"handle": "gopher",
				"status": "Developer",
				"skills": "Go,MongoDB",
			})

		assert.Equal(mt.T, http.StatusBadRequest, w.Code)
		body := decodeBody(mt.T, w)
		assert.Equal(mt.T, "That handle already exists", body["handle"])
	})
}

func TestAddExperience(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()

	input := map[string]interface{}{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
	}

	mt.Run("validation", func(mt *mtest.T) {
		w := performJSON(profileRouter(userID), http.MethodPost, "/api/profile/experience",
			map[string]string{"title": "Engineer"})

		assert.Equal(mt.T, http.StatusBadRequest, w.Code)
		body := decodeBody(mt.T, w)
		assert.Equal(mt.T, "Company is required", body["company"])
		assert.Equal(mt.T, "From date is required", body["from"])
	})

	mt.Run("no profile", func(mt *mtest.T) {
		database.Profiles = mt.Coll
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		w := performJSON(profileRouter(userID), http.MethodPost, "/api/profile/experience", input)

		assert.Equal(mt.T, http.StatusNotFound, w.Code)
		body := decodeBody(mt.T, w)
		assert.Equal(mt.T, "There is no profile for this user", body["noprofile"])
	})

	mt.Run("prepends the entry", func(mt *mtest.T) {
		database.Profiles = mt.Coll
		database.Users = mt.Coll

		entry := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Engineer"},
			{Key: "company", Value: "Acme"},
			{Key: "from", Value: "2020-01-01"},
			{Key: "current", Value: false},
		}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: profileDoc(userID, "gopher", bson.A{entry})}),
			// populateUser's user lookup
			mtest.CreateCursorResponse(1, "devconnect.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "name", Value: "Test User"},
				{Key: "email", Value: "a@b.com"},
				{Key: "avatar", Value: "avatar"},
			}),
		)

		w := performJSON(profileRouter(userID), http.MethodPost, "/api/profile/experience", input)

		require.Equal(mt.T, http.StatusOK, w.Code)
		body := decodeBody(mt.T, w)

		experience, ok := body["experience"].([]interface{})
		require.True(mt.T, ok)
		require.Len(mt.T, experience, 1)
		first, ok := experience[0].(map[string]interface{})
		require.True(mt.T, ok)
		assert.Equal(mt.T, "Engineer", first["title"])

		user, ok := body["user"].(map[string]interface{})
		require.True(mt.T, ok)
		assert.Equal(mt.T, "Test User", user["name"])
	})
}

func TestDeleteExperienceUnknownID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()

	mt.Run("id matches nothing, list unchanged", func(mt *mtest.T) {
		database.Profiles = mt.Coll
		database.Users = mt.Coll

		existing := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Engineer"},
			{Key: "company", Value: "Acme"},
			{Key: "from", Value: "2020-01-01"},
			{Key: "current", Value: false},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: profileDoc(userID, "gopher", bson.A{existing})}))

		path := "/api/profile/experience/" + primitive.NewObjectID().Hex()
		w := performJSON(profileRouter(userID), http.MethodDelete, path, nil)

		require.Equal(mt.T, http.StatusOK, w.Code)
		body := decodeBody(mt.T, w)
		experience, ok := body["experience"].([]interface{})
		require.True(mt.T, ok)
		assert.Len(mt.T, experience, 1)
	})
}
