package domain

import "errors"

var ErrPlayerNotFound = errors.New("player not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidSession = errors.New("invalid or expired session")
var ErrForbidden = errors.New("access forbidden")
var ErrDataUnavailable = errors.New("player store unavailable")
var ErrValidation = errors.New("invalid input")

// Club is the embedded club a player currently belongs to.
type Club struct {
	Name   string `json:"name" bson:"name"`
	League string `json:"league" bson:"league"`
}

// Player is the core catalog record. ID is assigned by the seed snapshot and
// never changes for the lifetime of the process.
type Player struct {
	ID            string `json:"id" bson:"id"`
	Name          string `json:"name" bson:"name"`
	Age           int    `json:"age" bson:"age"`
	Position      string `json:"position" bson:"position"`
	Nationality   string `json:"nationality" bson:"nationality"`
	OverallRating int    `json:"overallRating" bson:"overall_rating"`
	IsActive      bool   `json:"isActive" bson:"is_active"`
	BirthDate     string `json:"birthDate" bson:"birth_date"`
	Club          Club   `json:"club" bson:"club"`
	ImageURL      string `json:"imageURL" bson:"image_url"`
}
