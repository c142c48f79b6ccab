package mysql

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"bank_reviews/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertBank inserts or refreshes the bank row and returns its id.
// LAST_INSERT_ID is unreliable for the duplicate-key path, so the id is
// read back explicitly.
func (r *Repo) UpsertBank(ctx context.Context, b domain.Bank) (int64, error) {
	if _, err := r.db.ExecContext(ctx, upsertBankSQL, b.Code, b.Name, b.AppName, b.AppID); err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, selectBankIDSQL, b.Code).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	ids, err := r.bankIDs(ctx)
	if err != nil {
		return err
	}

	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*8)
	for _, rv := range rs {
		bankID, ok := ids[rv.Bank]
		if !ok {
			return domain.ErrUnknownBank
		}
		// Columns (from insertReviewsPrefix):
		// (bank_id, review_text, rating, review_date, sentiment_label, sentiment_score, theme, source)
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args,
			bankID,
			rv.ReviewText,
			rv.Rating,
			rv.Date,
			rv.SentimentLabel,
			rv.SentimentScore,
			rv.Theme,
			rv.Source,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := r.db.QueryContext(ctx, listBanksSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Bank
	for rows.Next() {
		var b domain.Bank
		var appName, appID sql.NullString
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &appName, &appID); err != nil {
			return nil, err
		}
		b.AppName = appName.String
		b.AppID = appID.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// reviewFilters applies the optional query predicates to a reviews select.
func reviewFilters(b sq.SelectBuilder, q domain.ReviewsQuery) sq.SelectBuilder {
	if q.Bank != "" {
		b = b.Where(sq.Eq{"b.code": q.Bank})
	}
	if q.Sentiment != "" {
		b = b.Where(sq.Eq{"r.sentiment_label": q.Sentiment})
	}
	if q.Theme != "" {
		b = b.Where(sq.Eq{"r.theme": q.Theme})
	}
	if q.MinRating > 0 {
		b = b.Where(sq.GtOrEq{"r.rating": q.MinRating})
	}
	return b
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewsQuery) (domain.ReviewsPage, error) {
	// Total counts every matching row, before the page limit.
	countSQL, countArgs, err := reviewFilters(
		sq.Select("COUNT(*)").From("reviews r").Join("banks b ON b.bank_id = r.bank_id"), q,
	).ToSql()
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.ReviewsPage{}, err
	}

	base := reviewFilters(sq.Select(
		"r.review_id", "b.code", "r.review_text", "r.rating",
		"DATE_FORMAT(r.review_date, '%Y-%m-%d')",
		"r.sentiment_label", "r.sentiment_score", "r.theme", "r.source",
	).
		From("reviews r").
		Join("banks b ON b.bank_id = r.bank_id"), q)

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	sqlStr, args, err := base.
		OrderBy("r.review_date DESC", "r.review_id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var date, label, theme, source sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(
			&rv.ReviewID,
			&rv.Bank,
			&rv.ReviewText,
			&rv.Rating,
			&date,
			&label,
			&score,
			&theme,
			&source,
		); err != nil {
			return domain.ReviewsPage{}, err
		}
		rv.Date = date.String
		rv.SentimentLabel = label.String
		rv.SentimentScore = score.Float64
		rv.Theme = theme.String
		rv.Source = source.String
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out, Total: total}, nil
}

func (r *Repo) SentimentByBank(ctx context.Context) ([]domain.SentimentCount, error) {
	sqlStr, args, err := sq.Select("b.code", "r.sentiment_label", "COUNT(*)").
		From("reviews r").
		Join("banks b ON b.bank_id = r.bank_id").
		GroupBy("b.code", "r.sentiment_label").
		OrderBy("b.code", "r.sentiment_label").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SentimentCount
	for rows.Next() {
		var c domain.SentimentCount
		if err := rows.Scan(&c.Bank, &c.Sentiment, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ThemeByBank(ctx context.Context) ([]domain.ThemeCount, error) {
	sqlStr, args, err := sq.Select("b.code", "r.theme", "COUNT(*)").
		From("reviews r").
		Join("banks b ON b.bank_id = r.bank_id").
		GroupBy("b.code", "r.theme").
		OrderBy("b.code", "COUNT(*) DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ThemeCount
	for rows.Next() {
		var c domain.ThemeCount
		if err := rows.Scan(&c.Bank, &c.Theme, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) RatingSamples(ctx context.Context, bank string) ([]domain.RatingSample, error) {
	sqlStr, args, err := sq.Select("r.rating", "r.sentiment_score", "r.sentiment_label").
		From("reviews r").
		Join("banks b ON b.bank_id = r.bank_id").
		Where(sq.Eq{"b.code": bank}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatingSample
	for rows.Next() {
		var s domain.RatingSample
		var score sql.NullFloat64
		var label sql.NullString
		if err := rows.Scan(&s.Rating, &score, &label); err != nil {
			return nil, err
		}
		s.SentimentScore = score.Float64
		s.SentimentLabel = label.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) bankIDs(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, bank_id FROM banks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, err
		}
		ids[code] = id
	}
	return ids, rows.Err()
}
