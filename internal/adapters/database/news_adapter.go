package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	"github.com/anushahashmi071/CareGroup-sub001/internal/query"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// NewsAdapter implements the NewsRepository interface
type NewsAdapter struct {
	client *postgres.Client
}

// NewNewsAdapter creates a new news adapter
func NewNewsAdapter(client *postgres.Client) repositories.NewsRepository {
	return &NewsAdapter{client: client}
}

func (a *NewsAdapter) view() *goqu.SelectDataset {
	tn := goqu.T(query.AliasNews)
	return from("news", query.AliasNews).Select(
		tn.Col("news_id"),
		tn.Col("title"),
		tn.Col("content"),
		tn.Col("image_path"),
		tn.Col("status"),
		tn.Col("author_id"),
		tn.Col("created_at"),
	)
}

func scanNews(row rowScanner) (*entities.News, error) {
	n := &entities.News{}
	var image sql.NullString
	var author sql.NullInt64
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &image, &n.Status, &author, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.ImagePath = image.String
	n.AuthorID = author.Int64
	return n, nil
}

// Create creates a new article
func (a *NewsAdapter) Create(ctx context.Context, news *entities.News) error {
	sqlStr, args, err := dialect.Insert("news").Prepared(true).
		Rows(goqu.Record{
			"title":      news.Title,
			"content":    news.Content,
			"image_path": nullString(news.ImagePath),
			"status":     string(news.Status),
			"author_id":  nullID(news.AuthorID),
		}).
		Returning("news_id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&news.ID, &news.CreatedAt); err != nil {
		return mapError(err, "failed to create news")
	}
	return nil
}

// GetByID retrieves an article by ID
func (a *NewsAdapter) GetByID(ctx context.Context, id int64) (*entities.News, error) {
	sqlStr, args, err := a.view().Where(query.NewsID.Ident().Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	n, err := scanNews(a.client.DB().QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("news", id)
	}
	if err != nil {
		return nil, mapError(err, "failed to get news")
	}
	return n, nil
}

// List retrieves articles matching q
func (a *NewsAdapter) List(ctx context.Context, q repositories.ListQuery) ([]*entities.News, error) {
	sqlStr, args, err := paginate(a.view(), q).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list news")
	}
	defer rows.Close()

	items := []*entities.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan news")
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate news")
	}
	return items, nil
}

// Count returns the number of articles matching where
func (a *NewsAdapter) Count(ctx context.Context, where query.Predicate) (int, error) {
	return countRows(ctx, a.client.DB(), where.Apply(from("news", query.AliasNews)), "news")
}

// Update updates title, content, image and status
func (a *NewsAdapter) Update(ctx context.Context, news *entities.News) error {
	sqlStr, args, err := dialect.Update("news").Prepared(true).
		Set(goqu.Record{
			"title":      news.Title,
			"content":    news.Content,
			"image_path": nullString(news.ImagePath),
			"status":     string(news.Status),
		}).
		Where(goqu.C("news_id").Eq(news.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "failed to update news")
	}
	return checkAffected(result, "news", news.ID)
}

// Delete deletes an article
func (a *NewsAdapter) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, a.client.DB(), "news", "news_id", "news", id)
}
