package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/home-edge/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "betting",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=betting sslmode=disable", ConnString(cfg))
}
