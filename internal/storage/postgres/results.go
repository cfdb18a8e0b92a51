package postgres

import (
	"database/sql"

	"github.com/hongminglow/staffly-be/internal/models"
)

// updateResult reports affected rows as both matched and modified; Postgres
// rewrites every matched row.
func updateResult(res sql.Result) (models.UpdateResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}
