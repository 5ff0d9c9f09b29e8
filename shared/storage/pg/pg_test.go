package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/yamdb-dev/yamdb/shared/config"
)

func TestConstraintHelpers(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "reviews_title_author_key"}
	fk := &pq.Error{Code: "23503", Constraint: "reviews_title_id_fkey"}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		constraint string
	}{
		{"unique", unique, true, false, "reviews_title_author_key"},
		{"wrapped unique", fmt.Errorf("insert: %w", unique), true, false, "reviews_title_author_key"},
		{"foreign key", fk, false, true, "reviews_title_id_fkey"},
		{"other pq error", &pq.Error{Code: "42P01"}, false, false, ""},
		{"plain error", errors.New("boom"), false, false, ""},
		{"nil", nil, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, IsForeignKeyViolation(tt.err))
			assert.Equal(t, tt.constraint, ConstraintName(tt.err))
		})
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.Pg{Host: "db", Port: 5432, User: "u", Password: "p", Dbname: "yamdb"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=yamdb sslmode=disable", dsn)
}
