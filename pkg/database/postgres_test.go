package database

import (
	"testing"

	"cinema-manager/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	cfg := utils.DatabaseConfig{
		Host:     "db",
		Name:     "cinema",
		User:     "app",
		Password: "secret",
	}
	assert.Equal(t, "user=app password=secret dbname=cinema sslmode=disable host=db port=5432", ConnString(cfg))

	cfg.Port = "6543"
	assert.Contains(t, ConnString(cfg), "port=6543")
}

func TestSchemaDeclaresOverlapBackstop(t *testing.T) {
	assert.Contains(t, schema, "screenings_no_overlap")
	assert.Contains(t, schema, "tsrange(start_time, end_time, '[)')")
}
