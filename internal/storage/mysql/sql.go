package mysql

const upsertBankSQL = `
INSERT INTO banks (code, bank_name, app_name, app_id)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  app_name = VALUES(app_name),
  app_id   = VALUES(app_id)
`

const selectBankIDSQL = `SELECT bank_id FROM banks WHERE code = ?`

// Dedup key is (bank_id, review_text): re-ingesting the same review
// refreshes its labels instead of inserting a duplicate row.
const insertReviewsPrefix = "INSERT INTO reviews\n  (bank_id, review_text, rating, review_date, sentiment_label, sentiment_score, theme, source)\nVALUES "

const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  rating          = VALUES(rating),\n" +
	"  review_date     = VALUES(review_date),\n" +
	"  sentiment_label = VALUES(sentiment_label),\n" +
	"  sentiment_score = VALUES(sentiment_score),\n" +
	"  theme           = VALUES(theme),\n" +
	"  source          = VALUES(source)\n"

const listBanksSQL = `SELECT bank_id, code, bank_name, app_name, app_id FROM banks ORDER BY bank_id`
