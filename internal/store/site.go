package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/quillapp/quill-server/internal/domain"
)

const keySite = "site:config"

// GetSite retrieves the singleton site document.
// Returns ErrNotFound if the site has not been initialized yet.
func (s *Store) GetSite(ctx context.Context) (*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var site domain.Site
	if err := s.get([]byte(keySite), &site); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get site: %w", err)
	}

	return &site, nil
}

// SaveSite writes the singleton site document.
func (s *Store) SaveSite(ctx context.Context, site *domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("marshal site: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySite), data)
	})
}
