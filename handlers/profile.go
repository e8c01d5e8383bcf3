package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"devconnect/database"
	"devconnect/models"
	"devconnect/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// populateUser attaches the owning user's name and avatar to a profile
// response. Best effort: a missing user just leaves the field empty.
func populateUser(ctx context.Context, p *models.Profile) {
	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": p.UserID}).Decode(&user); err == nil {
		p.User = &models.ProfileUser{Name: user.Name, Avatar: user.Avatar}
	}
}

// GetCurrentProfile returns the caller's own profile.
func GetCurrentProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	var profile models.Profile
	err := database.Profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("GetCurrentProfile error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// GetProfileByHandle is public.
func GetProfileByHandle(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	var profile models.Profile
	err := database.Profiles.FindOne(ctx, bson.M{"handle": c.Param("handle")}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("GetProfileByHandle error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// GetProfileByUser is public.
func GetProfileByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"profile": "There is no profile for this user"})
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	var profile models.Profile
	err = database.Profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("GetProfileByUser error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// GetAllProfiles is public; 404 when the collection is empty.
func GetAllProfiles(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	cursor, err := database.Profiles.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("GetAllProfiles error: %v", err)
		dbError(c)
		return
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		log.Printf("GetAllProfiles decode error: %v", err)
		dbError(c)
		return
	}

	if len(profiles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"profile": "There are no profiles"})
		return
	}

	for i := range profiles {
		populateUser(ctx, &profiles[i])
	}

	c.JSON(http.StatusOK, profiles)
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// UpsertProfile creates the caller's profile or updates it in place. Only
// the fields present in the request are written.
func UpsertProfile(c *gin.Context) {
	var in validation.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Profile(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	fields := bson.M{
		"handle": in.Handle,
		"status": in.Status,
		"skills": splitSkills(in.Skills),
	}
	if in.Company != "" {
		fields["company"] = in.Company
	}
	if in.Website != "" {
		fields["website"] = in.Website
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.Bio != "" {
		fields["bio"] = in.Bio
	}
	if in.GithubUsername != "" {
		fields["githubusername"] = in.GithubUsername
	}

	social := bson.M{}
	if in.YouTube != "" {
		social["youtube"] = in.YouTube
	}
	if in.Twitter != "" {
		social["twitter"] = in.Twitter
	}
	if in.Facebook != "" {
		social["facebook"] = in.Facebook
	}
	if in.LinkedIn != "" {
		social["linkedin"] = in.LinkedIn
	}
	if in.Instagram != "" {
		social["instagram"] = in.Instagram
	}
	if len(social) > 0 {
		fields["social"] = social
	}

	err := database.Profiles.FindOne(ctx, bson.M{"userId": userID}).Err()
	if err == nil {
		// Update in place and return the new document
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Profile
		err := database.Profiles.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": fields}, opts).Decode(&updated)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"handle": "That handle already exists"})
				return
			}
			log.Printf("UpsertProfile update error: %v", err)
			dbError(c)
			return
		}
		populateUser(ctx, &updated)
		c.JSON(http.StatusOK, updated)
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("UpsertProfile lookup error: %v", err)
		dbError(c)
		return
	}

	// Creating: the handle must not belong to anyone else
	err = database.Profiles.FindOne(ctx, bson.M{"handle": in.Handle}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"handle": "That handle already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("UpsertProfile handle lookup error: %v", err)
		dbError(c)
		return
	}

	profile := models.Profile{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Handle:         in.Handle,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         splitSkills(in.Skills),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Experience:     []models.Experience{},
		Education:      []models.Education{},
		Date:           time.Now(),
	}
	if len(social) > 0 {
		profile.Social = &models.SocialLinks{
			YouTube:   in.YouTube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			LinkedIn:  in.LinkedIn,
			Instagram: in.Instagram,
		}
	}

	if _, err := database.Profiles.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"handle": "That handle already exists"})
			return
		}
		log.Printf("UpsertProfile insert error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// AddExperience prepends an experience entry to the caller's profile,
// most recent first.
func AddExperience(c *gin.Context) {
	var in validation.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Experience(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	ctx, cancel := opContext()
	defer cancel()

	update := bson.M{"$push": bson.M{"experience": bson.M{"$each": bson.A{exp}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := database.Profiles.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("AddExperience error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// AddEducation mirrors AddExperience.
func AddEducation(c *gin.Context) {
	var in validation.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs, ok := validation.Education(in); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	ctx, cancel := opContext()
	defer cancel()

	update := bson.M{"$push": bson.M{"education": bson.M{"$each": bson.A{edu}, "$position": 0}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := database.Profiles.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("AddEducation error: %v", err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

// removeListEntry pulls one sub-entry out of the caller's profile and
// returns the updated document. An id that matches nothing leaves the list
// unchanged; only a missing profile is an error.
func removeListEntry(c *gin.Context, field, rawID string) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	filter := bson.M{"userId": userID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	var err error

	entryID, idErr := primitive.ObjectIDFromHex(rawID)
	if idErr != nil {
		// Unparseable id cannot match any entry; return the profile as is
		err = database.Profiles.FindOne(ctx, filter).Decode(&profile)
	} else {
		update := bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}}
		err = database.Profiles.FindOneAndUpdate(ctx, filter, update, opts).Decode(&profile)
	}

	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"noprofile": "There is no profile for this user"})
		return
	}
	if err != nil {
		log.Printf("remove %s error: %v", field, err)
		dbError(c)
		return
	}

	populateUser(ctx, &profile)
	c.JSON(http.StatusOK, profile)
}

func DeleteExperience(c *gin.Context) {
	removeListEntry(c, "experience", c.Param("exp_id"))
}

func DeleteEducation(c *gin.Context) {
	removeListEntry(c, "education", c.Param("edu_id"))
}

// DeleteAccount removes the caller's profile and then the user record.
// The two deletes are not transactional; a failure in between leaves an
// orphaned user.
func DeleteAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if _, err := database.Profiles.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		log.Printf("DeleteAccount profile error: %v", err)
		dbError(c)
		return
	}

	if _, err := database.Users.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		log.Printf("DeleteAccount user error: %v", err)
		dbError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
