package config

const (
	// MaxFolderNameLength is the maximum length (in characters) of a folder name.
	MaxFolderNameLength = 50

	// ReservedNameChars may not appear in folder names. They are the characters
	// most filesystems refuse, so folder trees can be exported as directories.
	ReservedNameChars = `/\:*?"<>|`

	// MaxImageNameLength is the maximum length for image display names.
	MaxImageNameLength = 100

	// MaxUserNameLength is the maximum length for a user's display name.
	MaxUserNameLength = 50

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6

	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72

	// MaxListLimit caps the page size of image listings.
	MaxListLimit = 100
)
