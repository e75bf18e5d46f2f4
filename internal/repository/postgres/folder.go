package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/repositories"
)

const folderColumns = "id, user_id, parent_id, name, path, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func folderNotFound(id string) error {
	return domain.NewNotFound(fmt.Sprintf("Folder not found with id of %s", id))
}

func folderConflict(name string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
	}
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if folder.Path == nil {
		folder.Path = []string{}
	}
	return &folder, nil
}

// Create inserts a folder. Sibling uniqueness is enforced by the
// (user_id, parent, name) index.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()
	folder.CreatedAt = time.Now().UTC()
	folder.UpdatedAt = folder.CreatedAt
	if folder.Path == nil {
		folder.Path = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, parent_id, name, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	err := executor(ctx, r.pool).QueryRow(ctx, query,
		folder.ID,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return folderConflict(folder.Name)
		}
		if IsPgForeignKeyError(err) && folder.ParentID != nil {
			return folderNotFound(*folder.ParentID)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	if !validID(id) {
		return nil, folderNotFound(id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, r.tables.Folders)

	folder, err := scanFolder(executor(ctx, r.pool).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, folderNotFound(id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// GetByIDs retrieves the owner's folders among ids
func (r *PostgresFolderRepository) GetByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*models.Folder, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	found := make(map[string]*models.Folder, len(valid))
	if len(valid) == 0 {
		return found, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND id::text = ANY($2)
	`, folderColumns, r.tables.Folders)

	folders, err := r.queryFolders(ctx, query, ownerID, valid)
	if err != nil {
		return nil, fmt.Errorf("get folders by ids: %w", err)
	}
	for i := range folders {
		found[folders[i].ID] = &folders[i]
	}
	return found, nil
}

// FindByName finds a sibling by exact name; nil, nil when absent
func (r *PostgresFolderRepository) FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND name = $2 AND parent_id IS NULL
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID, name)
	} else {
		if !validID(*parentID) {
			return nil, nil
		}
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND name = $2 AND parent_id = $3
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID, name, *parentID)
	}

	folder, err := scanFolder(executor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder by name and parent: %w", err)
	}

	return folder, nil
}

// Update persists the folder's name
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	if !validID(folder.ID) {
		return folderNotFound(folder.ID)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Folders)

	result, err := executor(ctx, r.pool).Exec(ctx, query,
		folder.Name,
		folder.UpdatedAt,
		folder.ID,
		folder.OwnerID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return folderConflict(folder.Name)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return folderNotFound(folder.ID)
	}

	return nil
}

// Delete deletes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return folderNotFound(id)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	result, err := executor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return &domain.ConflictError{Message: "Cannot delete folder that contains subfolders", ResourceType: "folder", ResourceID: id}
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return folderNotFound(id)
	}

	return nil
}

// HasChildren reports whether any folder has id as its parent
func (r *PostgresFolderRepository) HasChildren(ctx context.Context, ownerID, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND parent_id = $2)
	`, r.tables.Folders)

	var exists bool
	if err := executor(ctx, r.pool).QueryRow(ctx, query, ownerID, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check folder children: %w", err)
	}
	return exists, nil
}

// ListByOwner retrieves all of an owner's folders, newest first
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, folderColumns, r.tables.Folders)

	folders, err := r.queryFolders(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	rows, err := executor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
