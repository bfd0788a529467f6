package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/pkg/pagination"
	"github.com/verdict-ml/verdict/pkg/query"
	"github.com/verdict-ml/verdict/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a dataset repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "dataset"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) RecordIncorrect(
	ctx context.Context,
	sessionID, text, label string,
	confidence float64,
) error {
	q := `
		INSERT INTO dataset_entries(session_id, text, predicted_label, confidence)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, q, sessionID, text, label, confidence); err != nil {
		return fmt.Errorf("insert dataset entry: %w", err)
	}

	r.logger.Info(
		"dispute captured",
		"session", sessionID,
		"predicted_label", label,
	)
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count dataset entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query dataset entries: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Entry, error) {
	q := `
		UPDATE dataset_entries
		SET validated_by = $1, validated_at = NOW()
		WHERE id = $2
		RETURNING id, session_id, text, predicted_label, confidence,
				  created_at, validated_by, validated_at`

	e, err := repository.QueryOne(ctx, r.db, q, []any{cmd.ValidatedBy, id}, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dataset entry validated", "id", e.ID, "validated_by", cmd.ValidatedBy)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM dataset_entries WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dataset entry deleted", "id", id)
	return nil
}

// Export returns every entry in capture order for snapshot and
// download serialization.
func (r *repo) Export(ctx context.Context) ([]Entry, error) {
	qb := query.NewBuilder(projection, query.SortField{Field: "CreatedAt"})

	q, args := qb.Build()
	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("export dataset entries: %w", err)
	}
	return entries, nil
}
