// Food catalog HTTP handlers.
//
//   - GET    /foods/search?q=       (cached external search)
//   - GET    /foods/suggest?q=&k=   (offline suggestions from the canonical store)
//   - GET    /foods/{id}            (canonical record)
//   - POST   /foods                 (insert if absent)
//   - DELETE /foods/search-cache    (drop memoized searches)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/search"
	"github.com/tbourn/go-nutrition-backend/internal/utils"
)

const (
	defaultSuggestions = 5
	maxSuggestions     = 25
)

// FoodRequest is a food item in request bodies.
type FoodRequest struct {
	FoodID      string  `json:"food_id"      binding:"required" example:"171705"`
	Name        string  `json:"name"         binding:"required" example:"Chicken breast, roasted"`
	ServingSize float64 `json:"serving_size" example:"1"`
	Calories    float64 `json:"calories"     example:"165"`
	Protein     float64 `json:"protein"      example:"31"`
	Carbs       float64 `json:"carbs"        example:"0"`
	Fat         float64 `json:"fat"          example:"3.6"`
}

func (f FoodRequest) item() domain.FoodItem {
	return domain.FoodItem{
		FoodID:      strings.TrimSpace(f.FoodID),
		Name:        strings.TrimSpace(f.Name),
		ServingSize: f.ServingSize,
		Calories:    f.Calories,
		Protein:     f.Protein,
		Carbs:       f.Carbs,
		Fat:         f.Fat,
	}
}

// SearchFoodsResponse wraps search results.
type SearchFoodsResponse struct {
	Query string            `json:"query" example:"chicken breast"`
	Foods []domain.FoodItem `json:"foods"`
}

// SuggestFoodsResponse wraps ranked suggestions.
type SuggestFoodsResponse struct {
	Query       string          `json:"query" example:"roast chicken"`
	Suggestions []search.Result `json:"suggestions"`
}

// EnsureFoodResponse reports whether the food was inserted.
type EnsureFoodResponse struct {
	Food    domain.FoodItem `json:"food"`
	Created bool            `json:"created"`
}

// SearchFoods godoc
// @ID          searchFoods
// @Summary     Search foods
// @Description Returns foods matching q. Results are memoized per normalized query; a miss consults the nutrition source.
// @Tags        Foods
// @Produce     json
// @Param       q    query     string  true  "Search text"  example(chicken breast)
// @Success     200  {object}  handlers.SearchFoodsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Empty query"
// @Failure     502  {object}  handlers.ErrorResponse  "Lookup failed"
// @Failure     504  {object}  handlers.ErrorResponse  "Lookup timed out"
// @Router      /foods/search [get]
func (h *Handlers) SearchFoods(c *gin.Context) {
	q := c.Query("q")
	foods, err := h.catalog.Search(c.Request.Context(), q)
	if err != nil {
		failErr(c, err)
		return
	}
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	ok(c, http.StatusOK, SearchFoodsResponse{Query: strings.TrimSpace(q), Foods: foods})
}

// SuggestFoods godoc
// @ID          suggestFoods
// @Summary     Suggest known foods
// @Description Ranks foods already in the catalog by name similarity. Never calls the nutrition source.
// @Tags        Foods
// @Produce     json
// @Param       q    query     string  true   "Search text"
// @Param       k    query     int     false  "Max suggestions"  minimum(1) maximum(25) default(5)
// @Success     200  {object}  handlers.SuggestFoodsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /foods/suggest [get]
func (h *Handlers) SuggestFoods(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "q: must not be empty")
		return
	}
	k := utils.AtoiDefault(c.Query("k"), defaultSuggestions)
	if k < 1 {
		k = 1
	}
	if k > maxSuggestions {
		k = maxSuggestions
	}
	res, err := h.catalog.Suggest(c.Request.Context(), q, k)
	if err != nil {
		failErr(c, err)
		return
	}
	if res == nil {
		res = []search.Result{}
	}
	ok(c, http.StatusOK, SuggestFoodsResponse{Query: q, Suggestions: res})
}

// GetFood godoc
// @ID          getFood
// @Summary     Get a food
// @Tags        Foods
// @Produce     json
// @Param       id   path      string  true  "Food ID"  example(171705)
// @Success     200  {object}  domain.FoodItem
// @Failure     404  {object}  handlers.ErrorResponse  "Food not found"
// @Router      /foods/{id} [get]
func (h *Handlers) GetFood(c *gin.Context) {
	f, err := h.catalog.GetFood(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, f)
}

// EnsureFood godoc
// @ID          ensureFood
// @Summary     Add a food to the catalog
// @Description Inserts the food unless its id exists; the first stored version wins. Returns 201 when created, 200 otherwise.
// @Tags        Foods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.FoodRequest  true  "Food"
// @Success     200   {object}  handlers.EnsureFoodResponse
// @Success     201   {object}  handlers.EnsureFoodResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /foods [post]
func (h *Handlers) EnsureFood(c *gin.Context) {
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "food_id and name required")
		return
	}
	ctx := c.Request.Context()
	created, err := h.catalog.EnsureFood(ctx, req.item())
	if err != nil {
		failErr(c, err)
		return
	}
	f, err := h.catalog.GetFood(ctx, req.item().FoodID)
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, EnsureFoodResponse{Food: *f, Created: created})
}

// ClearSearchCache godoc
// @ID          clearSearchCache
// @Summary     Clear the search cache
// @Description Drops every memoized search; the next searches consult the nutrition source again.
// @Tags        Foods
// @Security    BearerAuth
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage failure"
// @Router      /foods/search-cache [delete]
func (h *Handlers) ClearSearchCache(c *gin.Context) {
	if err := h.catalog.ClearSearchCache(c.Request.Context()); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
