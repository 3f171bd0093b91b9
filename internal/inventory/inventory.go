// Package inventory reads vehicles and their classifications.
package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/cse340/motors/pkg/db"
)

// ErrNotFound is returned when a vehicle does not exist.
var ErrNotFound = errors.New("inventory: vehicle not found")

// Classification groups vehicles for navigation.
type Classification struct {
	Name string
	ID   int
}

// Vehicle is one inventory item.
type Vehicle struct {
	Make           string
	Model          string
	Year           string
	Description    string
	Image          string
	Thumbnail      string
	Color          string
	Classification string
	Price          float64
	Miles          int
	ID             int
}

// Title is the display name, e.g. "1982 DMC Delorean".
func (v Vehicle) Title() string {
	return v.Year + " " + v.Make + " " + v.Model
}

// Repository queries the inventory tables.
type Repository struct {
	q db.Querier
}

// NewRepository creates a repository on q.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

// Classifications returns every classification ordered by name.
func (r *Repository) Classifications(ctx context.Context) ([]Classification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT classification_id, classification_name FROM public.classification ORDER BY classification_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Classification
	for rows.Next() {
		var c Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ByClassification returns the vehicles of one classification. Only list fields are filled.
func (r *Repository) ByClassification(ctx context.Context, classificationID int) ([]Vehicle, error) {
	rows, err := r.q.Query(ctx,
		`SELECT i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_thumbnail, i.inv_price, c.classification_name
		FROM public.inventory AS i
		JOIN public.classification AS c ON i.classification_id = c.classification_id
		WHERE i.classification_id = $1
		ORDER BY i.inv_make, i.inv_model`,
		classificationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Thumbnail, &v.Price, &v.Classification); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ByID returns a single vehicle with every field.
func (r *Repository) ByID(ctx context.Context, id int) (Vehicle, error) {
	var v Vehicle
	err := r.q.QueryRow(ctx,
		`SELECT i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description, i.inv_image,
			i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color, c.classification_name
		FROM public.inventory AS i
		JOIN public.classification AS c ON i.classification_id = c.classification_id
		WHERE i.inv_id = $1`,
		id,
	).Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description, &v.Image,
		&v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.Classification)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrNotFound
	}
	if err != nil {
		return Vehicle{}, err
	}
	return v, nil
}
