package snapshots

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/internal/dataset"
	"github.com/verdict-ml/verdict/pkg/pagination"
	"github.com/verdict-ml/verdict/pkg/query"
	"github.com/verdict-ml/verdict/pkg/repository"
	"github.com/verdict-ml/verdict/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	source     Source
	logger     *slog.Logger
	pagination pagination.Config
	prefix     string
	now        func() time.Time
}

// New creates a snapshot repository implementing the System interface.
// prefix namespaces snapshot blobs within the storage container.
func New(
	db *sql.DB,
	store storage.System,
	source Source,
	logger *slog.Logger,
	pagination pagination.Config,
	prefix string,
) System {
	return &repo{
		db:         db,
		storage:    store,
		source:     source,
		logger:     logger.With("system", "snapshots"),
		pagination: pagination,
		prefix:     prefix,
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Snapshot], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	snaps, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}

	result := pagination.NewPageResult(snaps, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSnapshot)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

// Create serializes the current dataset, uploads it, and records the
// snapshot metadata. The blob is removed if the metadata insert fails.
func (r *repo) Create(ctx context.Context) (*Snapshot, error) {
	entries, err := r.source.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect dataset entries: %w", err)
	}

	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, entries); err != nil {
		return nil, fmt.Errorf("serialize dataset entries: %w", err)
	}

	name := fmt.Sprintf("dataset-%s.csv", r.now().UTC().Format("20060102-150405"))
	key := path.Join(r.prefix, name)

	if err := r.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv"); err != nil {
		return nil, fmt.Errorf("upload snapshot blob: %w", err)
	}

	q := `
		INSERT INTO snapshots(name, storage_key, size_bytes, entry_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, storage_key, size_bytes, entry_count, created_at`

	insertArgs := []any{
		name,
		key,
		int64(buf.Len()),
		len(entries),
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Snapshot, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanSnapshot)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"snapshot created",
		"id", s.ID,
		"name", s.Name,
		"entries", s.EntryCount,
		"size_bytes", s.SizeBytes,
	)
	return &s, nil
}

func (r *repo) Download(
	ctx context.Context,
	id uuid.UUID,
) (*Snapshot, *storage.DownloadResult, error) {
	snap, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := r.storage.Download(ctx, snap.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download snapshot blob: %w", err)
	}

	return snap, result, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	snap, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM snapshots WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, snap.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", snap.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("snapshot deleted", "id", id)
	return nil
}
