package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"studhub/internal/filter"
	"studhub/internal/model"
)

// SearchResult is one page of matching listings plus the total match count.
type SearchResult struct {
	Listings []model.Listing `json:"listings"`
	Total    int             `json:"total"`
}

const listingColumns = `id, kind, title, description, category, location, price, rating, seller, created_at_unixms`

func validateListing(l model.Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return ValidationError{Field: "title", Reason: "required"}
	}
	if l.Kind != model.ListingKindRental && l.Kind != model.ListingKindService {
		return ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", l.Kind)}
	}
	if !filter.IsCategory(l.Category) || l.Category == filter.AllCategories {
		return ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", l.Category)}
	}
	if !filter.IsLocation(l.Location) || l.Location == filter.AllLocations {
		return ValidationError{Field: "location", Reason: fmt.Sprintf("unknown location %q", l.Location)}
	}
	if l.Price < 0 {
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if l.Rating < 0 || l.Rating > 5 {
		return ValidationError{Field: "rating", Reason: "must be within [0, 5]"}
	}
	return nil
}

// Add stores l, assigning an ID and creation time when they are missing.
func (s Store) Add(ctx context.Context, l model.Listing) (model.Listing, error) {
	l.Title = strings.TrimSpace(l.Title)
	if l.Kind == "" {
		l.Kind = model.ListingKindRental
	}
	if err := validateListing(l); err != nil {
		return model.Listing{}, err
	}
	if l.ID == "" {
		l.ID = NewListingID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	defer db.Close()

	if err := insertListing(ctx, db, l); err != nil {
		return model.Listing{}, err
	}
	return l, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertListing(ctx context.Context, db execer, l model.Listing) error {
	_, err := db.ExecContext(ctx, `INSERT INTO listings(
		`+listingColumns+`, search_text
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, string(l.Kind), l.Title, l.Description, l.Category, l.Location,
		l.Price, l.Rating, l.Seller, l.CreatedAt.UTC().UnixMilli(),
		searchText(l.Title, l.Description, l.Category, l.Seller),
	)
	if err != nil {
		return fmt.Errorf("insert listing %s: %w", l.ID, err)
	}
	return nil
}

func (s Store) Get(ctx context.Context, id string) (model.Listing, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return l, err
}

func (s Store) Delete(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireDeleted(id, res)
}

func requireDeleted(id string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns listings without any filter applied.
func (s Store) List(ctx context.Context, p Page) (SearchResult, error) {
	return s.Search(ctx, filter.NewState(), p)
}

// Search returns the listings matching st, best rated first.
func (s Store) Search(ctx context.Context, st filter.State, p Page) (SearchResult, error) {
	p = p.normalized()
	where, args := buildSearchWhere(st, p)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	defer db.Close()

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE `+where, args...).Scan(&total); err != nil {
		return SearchResult{}, fmt.Errorf("count listings: %w", err)
	}

	q := `SELECT ` + listingColumns + ` FROM listings WHERE ` + where +
		` ORDER BY rating DESC, created_at_unixms DESC, id ASC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	out := SearchResult{Listings: []model.Listing{}, Total: total}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return SearchResult{}, err
		}
		out.Listings = append(out.Listings, l)
	}
	return out, rows.Err()
}

// Stats computes the home page counters.
func (s Store) Stats(ctx context.Context) (model.Stats, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	defer db.Close()

	var st model.Stats
	var avg sql.NullFloat64
	err = db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COUNT(DISTINCT NULLIF(seller, '')),
		COUNT(DISTINCT location),
		AVG(NULLIF(rating, 0))
	FROM listings`).Scan(&st.Listings, &st.Sellers, &st.Schools, &avg)
	if err != nil {
		return model.Stats{}, fmt.Errorf("stats: %w", err)
	}
	if avg.Valid {
		st.AvgRating = avg.Float64
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(r rowScanner) (model.Listing, error) {
	var l model.Listing
	var kind string
	var createdMs int64
	if err := r.Scan(&l.ID, &kind, &l.Title, &l.Description, &l.Category, &l.Location,
		&l.Price, &l.Rating, &l.Seller, &createdMs); err != nil {
		return model.Listing{}, err
	}
	l.Kind = model.ListingKind(kind)
	l.CreatedAt = time.UnixMilli(createdMs).UTC()
	return l, nil
}
