package initializers

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *goqu.Database

func ConnectDB() {
	db, err := sql.Open("postgres", Config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open postgres connection")
	}

	err = db.Ping()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reach postgres")
	}

	DB = goqu.New("postgres", db)
	log.Info().Msg("Connected to postgres")
}
