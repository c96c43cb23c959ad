package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/squadbase/player-catalog/internal/api/metrics"
	apimiddleware "github.com/squadbase/player-catalog/internal/api/middleware"
	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// PlayerHandler handles the catalog listing, detail, and edit routes.
type PlayerHandler struct {
	query    ports.PlayerQueryService
	mutation ports.PlayerMutationService
}

func NewPlayerHandler(query ports.PlayerQueryService, mutation ports.PlayerMutationService) *PlayerHandler {
	return &PlayerHandler{query: query, mutation: mutation}
}

// List handles GET / — the landing listing in store order.
//
// @Summary      List all players
// @Tags         players
// @Produce      json
// @Success      200  {object}  listPlayersResponse
// @Router       / [get]
func (h *PlayerHandler) List(c echo.Context) error {
	players, err := h.query.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.ListRequestsTotal.WithLabelValues("landing", "none").Inc()
	return c.JSON(http.StatusOK, listPlayersResponse{
		Data:  toPlayerResponses(players),
		Count: len(players),
	})
}

// Overview handles GET /overview — the sorted listing.
//
// @Summary      List players sorted by an attribute
// @Tags         players
// @Produce      json
// @Param        sortAttribute  query     string  false  "Sort attribute (default name)"
// @Param        sortOrder      query     string  false  "asc or desc (default asc)"
// @Success      200            {object}  overviewResponse
// @Failure      401            {object}  errorResponse
// @Router       /overview [get]
func (h *PlayerHandler) Overview(c echo.Context) error {
	key := domain.ParseSortKey(c.QueryParam("sortAttribute"))
	dir := domain.ParseSortDirection(c.QueryParam("sortOrder"))

	players, err := h.query.ListSorted(c.Request().Context(), key, dir)
	if err != nil {
		return err
	}

	metrics.ListRequestsTotal.WithLabelValues("overview", string(key)).Inc()
	return c.JSON(http.StatusOK, overviewResponse{
		Data:          toPlayerResponses(players),
		Count:         len(players),
		SortAttribute: string(key),
		SortOrder:     string(dir),
	})
}

// Detail handles GET /detail/:id — one player plus the circular next id.
//
// @Summary      Get a player by id
// @Tags         players
// @Produce      json
// @Param        id   path      string  true  "Player id"
// @Success      200  {object}  playerDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /detail/{id} [get]
func (h *PlayerHandler) Detail(c echo.Context) error {
	detail, err := h.query.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, playerDetailResponse{
		Player:       toPlayerResponse(detail.Player),
		NextPlayerID: detail.NextPlayerID,
	})
}

// EditForm handles GET /edit/:id — current field values for the edit form.
//
// @Summary      Get a player's editable fields
// @Tags         players
// @Produce      json
// @Param        id   path      string  true  "Player id"
// @Success      200  {object}  playerResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /edit/{id} [get]
func (h *PlayerHandler) EditForm(c echo.Context) error {
	detail, err := h.query.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlayerResponse(detail.Player))
}

// EditSubmit handles POST /edit/:id — applies a partial update. Form posts
// are redirected back to /overview; JSON clients get the updated record.
//
// @Summary      Update a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Player id"
// @Param        body  body      updatePlayerRequest  true  "Fields to change"
// @Success      200   {object}  playerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /edit/{id} [post]
func (h *PlayerHandler) EditSubmit(c echo.Context) error {
	isForm := isFormSubmission(c)

	var patch ports.PlayerPatch
	var err error
	if isForm {
		patch, err = patchFromForm(c)
	} else {
		patch, err = patchFromJSON(c)
	}
	if err != nil {
		return err
	}

	updated, err := h.mutation.UpdatePlayer(c.Request().Context(), apimiddleware.Caller(c), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.PlayerUpdatesTotal.WithLabelValues(strconv.Itoa(fieldCount(patch))).Inc()

	if isForm {
		return c.Redirect(http.StatusFound, "/overview")
	}
	return c.JSON(http.StatusOK, toPlayerResponse(*updated))
}

func isFormSubmission(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.Contains(ct, echo.MIMEApplicationForm) || strings.Contains(ct, echo.MIMEMultipartForm)
}

// patchFromForm builds a patch from posted form values. A field absent from
// the form is left unchanged, except isActive: checkboxes post nothing when
// unticked, so any form submission sets it ("on" → true, else false).
func patchFromForm(c echo.Context) (ports.PlayerPatch, error) {
	var patch ports.PlayerPatch

	if err := c.Request().ParseForm(); err != nil {
		return patch, fmt.Errorf("%w: malformed form", domain.ErrValidation)
	}
	form := c.Request().PostForm

	if v, ok := formValue(form, "name"); ok {
		patch.Name = &v
	}
	if v, ok := formValue(form, "age"); ok {
		age, err := strconv.Atoi(v)
		if err != nil || age < 0 {
			return patch, fmt.Errorf("%w: age must be a non-negative integer", domain.ErrValidation)
		}
		patch.Age = &age
	}
	if v, ok := formValue(form, "position"); ok {
		patch.Position = &v
	}
	if v, ok := formValue(form, "nationality"); ok {
		patch.Nationality = &v
	}
	if v, ok := formValue(form, "overallRating"); ok {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return patch, fmt.Errorf("%w: overallRating must be an integer", domain.ErrValidation)
		}
		patch.OverallRating = &rating
	}
	if v, ok := formValue(form, "birthDate"); ok {
		patch.BirthDate = &v
	}
	if v, ok := formValue(form, "clubName"); ok {
		patch.ClubName = &v
	}
	if v, ok := formValue(form, "clubLeague"); ok {
		patch.ClubLeague = &v
	}
	if v, ok := formValue(form, "imageURL"); ok {
		patch.ImageURL = &v
	}

	// checkbox convention
	active := form.Get("isActive") == "on"
	patch.IsActive = &active

	return patch, nil
}

func formValue(form map[string][]string, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func patchFromJSON(c echo.Context) (ports.PlayerPatch, error) {
	var req updatePlayerRequest
	if err := c.Bind(&req); err != nil {
		return ports.PlayerPatch{}, fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return ports.PlayerPatch{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return ports.PlayerPatch{
		Name:          req.Name,
		Age:           req.Age,
		Position:      req.Position,
		Nationality:   req.Nationality,
		OverallRating: req.OverallRating,
		IsActive:      req.IsActive,
		BirthDate:     req.BirthDate,
		ClubName:      req.ClubName,
		ClubLeague:    req.ClubLeague,
		ImageURL:      req.ImageURL,
	}, nil
}

func fieldCount(p ports.PlayerPatch) int {
	n := 0
	for _, set := range []bool{
		p.Name != nil, p.Age != nil, p.Position != nil, p.Nationality != nil,
		p.OverallRating != nil, p.IsActive != nil, p.BirthDate != nil,
		p.ClubName != nil, p.ClubLeague != nil, p.ImageURL != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
