package repository

import (
	"context"
	"fmt"

	"platerental/config"
	"platerental/db"
	"platerental/db/mongo"
	"platerental/db/postgres"
	"platerental/logger"
)

// Store bundles the repositories of one backing database.
type Store struct {
	Clients  ClientRepository
	Challans ChallanRepository
	Stock    StockRepository
	Bills    BillRepository
	Users    UserRepository

	conn db.DB
}

// OpenStore connects to the database selected by cfg.DBType and prepares
// its schema: migrations for Postgres, unique indexes for Mongo.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	log := logger.WithComponent("store")

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info().Msg("connected to postgres")
		return &Store{
			Clients:  NewPostgresClientRepo(pg.Conn),
			Challans: NewPostgresChallanRepo(pg.Conn),
			Stock:    NewPostgresStockRepo(pg.Conn),
			Bills:    NewPostgresBillRepo(pg.Conn),
			Users:    NewPostgresUserRepo(pg.Conn),
			conn:     pg,
		}, nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		database := mg.Client.Database(cfg.MongoDB)
		if err := EnsureMongoIndexes(ctx, database); err != nil {
			mg.Disconnect()
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.MongoDB).Msg("connected to mongo")
		return &Store{
			Clients:  NewMongoClientRepo(database),
			Challans: NewMongoChallanRepo(database),
			Stock:    NewMongoStockRepo(database),
			Bills:    NewMongoBillRepo(database),
			Users:    NewMongoUserRepo(database),
			conn:     mg,
		}, nil
	}
	return nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
}

func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Disconnect()
}
