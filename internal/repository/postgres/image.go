package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
)

const imageColumns = "id, user_id, folder_id, name, image_url, created_at"

// PostgresImageRepository implements the ImageRepository interface
type PostgresImageRepository struct {
	pool     *pgxpool.Pool
	tables   *TableNames
	language string
	logger   *slog.Logger
}

// NewImageRepository creates a new image repository
func NewImageRepository(config *RepositoryConfig) repositories.ImageRepository {
	return &PostgresImageRepository{
		pool:     config.Pool,
		tables:   config.Tables,
		language: config.SearchLanguage,
		logger:   config.Logger,
	}
}

func imageNotFound(id string) error {
	return domain.NewNotFound(fmt.Sprintf("image %s not found", id))
}

// Create inserts an image record
func (r *PostgresImageRepository) Create(ctx context.Context, image *models.Image) error {
	image.ID = uuid.NewString()
	image.CreatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, folder_id, name, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, r.tables.Images)

	err := executor(ctx, r.pool).QueryRow(ctx, query,
		image.ID,
		image.OwnerID,
		image.FolderID,
		image.Name,
		image.ImageURL,
		image.CreatedAt,
	).Scan(&image.CreatedAt)

	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

// GetByID retrieves an image by ID
func (r *PostgresImageRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Image, error) {
	if !validID(id) {
		return nil, imageNotFound(id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, imageColumns, r.tables.Images)

	var image models.Image
	err := executor(ctx, r.pool).QueryRow(ctx, query, id, ownerID).Scan(
		&image.ID,
		&image.OwnerID,
		&image.FolderID,
		&image.Name,
		&image.ImageURL,
		&image.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, imageNotFound(id)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

// Find lists images matching filter, newest first
func (r *PostgresImageRepository) Find(ctx context.Context, ownerID string, filter models.ImageFilter) ([]models.Image, error) {
	if filter.FolderID != nil && !validID(*filter.FolderID) {
		return []models.Image{}, nil
	}

	query, args := buildImageQuery(r.tables.Images, r.language, ownerID, filter)

	rows, err := executor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		var image models.Image
		if err := rows.Scan(
			&image.ID,
			&image.OwnerID,
			&image.FolderID,
			&image.Name,
			&image.ImageURL,
			&image.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return images, nil
}

// Delete deletes an image record
func (r *PostgresImageRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return imageNotFound(id)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Images)

	result, err := executor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return imageNotFound(id)
	}

	return nil
}

// buildImageQuery assembles the listing query for filter. Placeholders are
// numbered in the order conditions are added. language must already be a
// validated text search configuration name.
func buildImageQuery(table, language, ownerID string, filter models.ImageFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{ownerID}

	if filter.FolderID != nil {
		args = append(args, *filter.FolderID)
		conditions = append(conditions, fmt.Sprintf("folder_id = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, anyWordQuery(filter.Search))
		conditions = append(conditions,
			fmt.Sprintf("to_tsvector('%s', name) @@ websearch_to_tsquery('%s', $%d)", language, language, len(args)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE %s ORDER BY created_at DESC, id DESC",
		imageColumns, table, strings.Join(conditions, " AND "))

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	return b.String(), args
}

// anyWordQuery rewrites free text into a websearch query matching any of
// its words. Punctuation is dropped so user input cannot carry operators.
func anyWordQuery(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " or ")
}
