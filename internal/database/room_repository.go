package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
)

const roomColumns = `id, name, type, description, price, max_occupancy, size,
	images, amenities, features, available, inventory, rating, review_count,
	created_at, updated_at`

// RoomRepository handles room catalog database operations
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{
		db: db,
	}
}

// RoomQuery narrows the catalog with equality/range predicates. Zero values
// mean "not filtered". Amenity-subset matching happens in the search
// service, not here.
type RoomQuery struct {
	Type          string
	MinPrice      float64
	MaxPrice      float64
	MinOccupancy  int
	OnlyAvailable bool
}

// GetAllRooms returns the whole catalog
func (r *RoomRepository) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	query := fmt.Sprintf(`SELECT %s FROM rooms ORDER BY created_at DESC`, roomColumns)
	if err := r.db.Select(&rooms, query); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoomByID retrieves a room by ID
func (r *RoomRepository) GetRoomByID(id string) (*models.Room, error) {
	var room models.Room
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE id = $1`, roomColumns)
	if err := r.db.Get(&room, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// QueryRooms returns rooms matching the given predicates
func (r *RoomRepository) QueryRooms(q RoomQuery) ([]models.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE 1=1`, roomColumns)
	args := []interface{}{}
	idx := 1

	if q.OnlyAvailable {
		query += ` AND available = TRUE`
	}
	if q.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, q.Type)
		idx++
	}
	if q.MinPrice > 0 {
		query += fmt.Sprintf(` AND price >= $%d`, idx)
		args = append(args, q.MinPrice)
		idx++
	}
	if q.MaxPrice > 0 {
		query += fmt.Sprintf(` AND price <= $%d`, idx)
		args = append(args, q.MaxPrice)
		idx++
	}
	if q.MinOccupancy > 0 {
		query += fmt.Sprintf(` AND max_occupancy >= $%d`, idx)
		args = append(args, q.MinOccupancy)
		idx++
	}
	query += ` ORDER BY rating DESC`

	var rooms []models.Room
	if err := r.db.Select(&rooms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	return rooms, nil
}

// GetFeaturedRooms returns the top-rated available rooms
func (r *RoomRepository) GetFeaturedRooms(limit int) ([]models.Room, error) {
	var rooms []models.Room
	query := fmt.Sprintf(`
		SELECT %s FROM rooms
		WHERE available = TRUE
		ORDER BY rating DESC
		LIMIT $1`, roomColumns)
	if err := r.db.Select(&rooms, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get featured rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom inserts a new room into the catalog
func (r *RoomRepository) CreateRoom(req *models.RoomRequest) (*models.Room, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	room := &models.Room{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Type:         models.RoomType(req.Type),
		Description:  req.Description,
		Price:        req.Price,
		MaxOccupancy: req.MaxOccupancy,
		Size:         req.Size,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Features:     req.Features,
		Available:    available,
		Inventory:    req.Inventory,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO rooms (
			id, name, type, description, price, max_occupancy, size,
			images, amenities, features, available, inventory,
			rating, review_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 0, $13, $14)
	`
	_, err := r.db.Exec(
		query,
		room.ID,
		room.Name,
		room.Type,
		room.Description,
		room.Price,
		room.MaxOccupancy,
		room.Size,
		room.Images,
		room.Amenities,
		room.Features,
		room.Available,
		room.Inventory,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// UpdateRoom replaces the mutable fields of a room
func (r *RoomRepository) UpdateRoom(id string, req *models.RoomRequest) (*models.Room, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	query := `
		UPDATE rooms
		SET name = $2, type = $3, description = $4, price = $5,
		    max_occupancy = $6, size = $7, images = $8, amenities = $9,
		    features = $10, available = $11, inventory = $12, updated_at = $13
		WHERE id = $1
	`
	result, err := r.db.Exec(
		query,
		id,
		req.Name,
		req.Type,
		req.Description,
		req.Price,
		req.MaxOccupancy,
		req.Size,
		models.StringArray(req.Images),
		models.StringArray(req.Amenities),
		models.StringArray(req.Features),
		available,
		req.Inventory,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetRoomByID(id)
}

// DeleteRoom removes a room from the catalog
func (r *RoomRepository) DeleteRoom(id string) error {
	result, err := r.db.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRating stores the recomputed rating aggregate after a review change
func (r *RoomRepository) UpdateRating(id string, rating float64, reviewCount int) error {
	_, err := r.db.Exec(
		`UPDATE rooms SET rating = $2, review_count = $3, updated_at = $4 WHERE id = $1`,
		id, rating, reviewCount, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update room rating: %w", err)
	}
	return nil
}

// TotalInventory sums inventory across the catalog
func (r *RoomRepository) TotalInventory() (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COALESCE(SUM(inventory), 0) FROM rooms`); err != nil {
		return 0, fmt.Errorf("failed to sum inventory: %w", err)
	}
	return total, nil
}

// CountRooms returns the number of room types in the catalog
func (r *RoomRepository) CountRooms() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM rooms`); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}
