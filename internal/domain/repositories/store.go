package repositories

import "context"

// Store bundles the repositories of one backend
type Store struct {
	Users   UserRepository
	Folders FolderRepository
	Images  ImageRepository

	// Tx groups calls on the repositories above. Only postgres makes it atomic.
	Tx TransactionManager

	// Close releases connections held by the backend
	Close func(ctx context.Context) error
}
