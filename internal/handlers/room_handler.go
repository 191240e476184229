package handlers

import (
	"net/http"
	"strconv"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RoomHandler handles the public room catalog endpoints
type RoomHandler struct {
	roomRepo      *database.RoomRepository
	extraRepo     *database.ExtraRepository
	searchService *services.SearchService
	reviewService *services.ReviewService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(
	roomRepo *database.RoomRepository,
	extraRepo *database.ExtraRepository,
	searchService *services.SearchService,
	reviewService *services.ReviewService,
) *RoomHandler {
	return &RoomHandler{
		roomRepo:      roomRepo,
		extraRepo:     extraRepo,
		searchService: searchService,
		reviewService: reviewService,
	}
}

// ListRooms returns the filtered room catalog
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	guests, _ := strconv.Atoi(c.Query("guests"))

	rooms, err := h.searchService.Filter(
		c.Query("type"),
		minPrice,
		maxPrice,
		guests,
		c.QueryArray("amenities"),
		c.Query("q"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}

// GetFeaturedRooms returns the highest rated rooms for the home page
// GET /api/v1/rooms/featured
func (h *RoomHandler) GetFeaturedRooms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	rooms, err := h.searchService.FeaturedRooms(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom returns one room with its approved reviews
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomRepo.GetRoomByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	reviews, err := h.reviewService.GetRoomReviews(room.ID)
	if err != nil {
		// The room still renders without its reviews
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{"room": room, "reviews": reviews})
}

// Search runs an availability search from the search form
// GET /api/v1/rooms/search
func (h *RoomHandler) Search(c *gin.Context) {
	var criteria models.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid search parameters"})
		return
	}

	rooms, err := h.searchService.Search(&criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}

// ListExtras returns the bookable add-ons
// GET /api/v1/extras
func (h *RoomHandler) ListExtras(c *gin.Context) {
	category := c.Query("category")

	var extras []models.Extra
	var err error
	if category != "" {
		extras, err = h.extraRepo.GetExtrasByCategory(category)
	} else {
		extras, err = h.extraRepo.GetAvailableExtras()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

// CreateReview submits a review for a completed stay
// POST /api/v1/rooms/:id/reviews
func (h *RoomHandler) CreateReview(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}
	req.RoomID = c.Param("id")

	review, err := h.reviewService.CreateReview(userCtx.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
