package handler

import "github.com/squadbase/player-catalog/internal/core/domain"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type clubResponse struct {
	Name   string `json:"name"`
	League string `json:"league"`
}

type playerResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Age           int          `json:"age"`
	Position      string       `json:"position"`
	Nationality   string       `json:"nationality"`
	OverallRating int          `json:"overallRating"`
	IsActive      bool         `json:"isActive"`
	BirthDate     string       `json:"birthDate"`
	Club          clubResponse `json:"club"`
	ImageURL      string       `json:"imageURL"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Position:      p.Position,
		Nationality:   p.Nationality,
		OverallRating: p.OverallRating,
		IsActive:      p.IsActive,
		BirthDate:     p.BirthDate,
		Club:          clubResponse{Name: p.Club.Name, League: p.Club.League},
		ImageURL:      p.ImageURL,
	}
}

func toPlayerResponses(players []domain.Player) []playerResponse {
	out := make([]playerResponse, len(players))
	for i, p := range players {
		out[i] = toPlayerResponse(p)
	}
	return out
}

type listPlayersResponse struct {
	Data  []playerResponse `json:"data"`
	Count int              `json:"count"`
}

type overviewResponse struct {
	Data          []playerResponse `json:"data"`
	Count         int              `json:"count"`
	SortAttribute string           `json:"sortAttribute"`
	SortOrder     string           `json:"sortOrder"`
}

type playerDetailResponse struct {
	Player       playerResponse `json:"player"`
	NextPlayerID string         `json:"nextPlayerId"`
}

// updatePlayerRequest is the JSON body for POST /edit/:id. Pointer fields
// distinguish "leave unchanged" from "set to zero value". Form submissions
// bypass this type and are parsed from the posted values directly.
type updatePlayerRequest struct {
	Name          *string `json:"name"`
	Age           *int    `json:"age" validate:"omitempty,gte=0"`
	Position      *string `json:"position"`
	Nationality   *string `json:"nationality"`
	OverallRating *int    `json:"overallRating" validate:"omitempty,gte=0,lte=99"`
	IsActive      *bool   `json:"isActive"`
	BirthDate     *string `json:"birthDate"`
	ClubName      *string `json:"clubName"`
	ClubLeague    *string `json:"clubLeague"`
	ImageURL      *string `json:"imageURL" validate:"omitempty,url"`
}
