// Package memory keeps every record in process memory. It backs the "memory"
// store driver for local development and serves as the repository double in
// service and handler tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"imagefolders/internal/domain/repositories"
)

// NewStore returns an empty in-memory store
func NewStore() *repositories.Store {
	return &repositories.Store{
		Users:   NewUserRepository(),
		Folders: NewFolderRepository(),
		Images:  NewImageRepository(),
		Tx:      repositories.NoTx{},
		Close:   func(context.Context) error { return nil },
	}
}

var clock struct {
	mu   sync.Mutex
	last time.Time
}

// now returns strictly increasing timestamps so newest-first ordering is
// stable even for records created within the same clock tick
func now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	t := time.Now().UTC()
	if !t.After(clock.last) {
		t = clock.last.Add(time.Microsecond)
	}
	clock.last = t
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// tokenize splits text into lower-cased words for name search
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchesText reports whether any query word is a word of name
func matchesText(name, query string) bool {
	words := make(map[string]struct{})
	for _, w := range tokenize(name) {
		words[w] = struct{}{}
	}
	for _, q := range tokenize(query) {
		if _, ok := words[q]; ok {
			return true
		}
	}
	return false
}
