package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"profilecard/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store drivers, chosen from the connection string scheme.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Store bundles one repository per profile kind over a single backend.
type Store struct {
	Driver string

	Students      ProfileRepository[models.Student]
	BioData       ProfileRepository[models.BioData]
	Professionals ProfileRepository[models.Professional]
	BuyerCards    ProfileRepository[models.BuyerCard]
	Sellers       ProfileRepository[models.Seller]

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// SetPing replaces the reachability check.
func (s *Store) SetPing(ping func(ctx context.Context) error) { s.ping = ping }

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// DriverFor picks a driver from the scheme of a connection string.
func DriverFor(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return DriverMongo, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		return DriverSQLite, nil
	case strings.HasPrefix(dsn, "memory://"):
		return DriverMemory, nil
	}
	return "", fmt.Errorf("unsupported database url scheme in %q", redact(dsn))
}

// Open connects to the backend named by dsn and prepares its schema.
func Open(ctx context.Context, dsn, dbName string, logger *zap.Logger) (*Store, error) {
	driver, err := DriverFor(dsn)
	if err != nil {
		return nil, err
	}
	logger.Info("opening store", zap.String("driver", driver), zap.String("database", dbName))

	switch driver {
	case DriverMongo:
		client, err := ConnectMongo(ctx, dsn)
		if err != nil {
			return nil, err
		}
		store, err := NewMongoStore(ctx, client.Database(dbName))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		store.ping = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		store.close = client.Disconnect
		return store, nil
	case DriverPostgres:
		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return NewGORMStore(db, DriverPostgres)
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return NewGORMStore(db, DriverSQLite)
	}
	return NewMemoryStore(), nil
}

// ConnectMongo initializes the MongoDB connection and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// NewMongoStore builds repositories over db and ensures their indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	students := NewMongoRepository[models.Student](db)
	biodata := NewMongoRepository[models.BioData](db)
	professionals := NewMongoRepository[models.Professional](db)
	buyerCards := NewMongoRepository[models.BuyerCard](db)
	sellers := NewMongoRepository[models.Seller](db)

	for _, indexer := range []interface {
		EnsureIndexes(context.Context) error
	}{students, biodata, professionals, buyerCards, sellers} {
		if err := indexer.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}

	return &Store{
		Driver:        DriverMongo,
		Students:      students,
		BioData:       biodata,
		Professionals: professionals,
		BuyerCards:    buyerCards,
		Sellers:       sellers,
	}, nil
}

// NewGORMStore migrates the profile tables and builds repositories over db.
func NewGORMStore(db *gorm.DB, driver string) (*Store, error) {
	err := db.AutoMigrate(
		&models.Student{},
		&models.BioData{},
		&models.Professional{},
		&models.BuyerCard{},
		&models.Seller{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}

	return &Store{
		Driver:        driver,
		Students:      NewGORMRepository[models.Student](db),
		BioData:       NewGORMRepository[models.BioData](db),
		Professionals: NewGORMRepository[models.Professional](db),
		BuyerCards:    NewGORMRepository[models.BuyerCard](db),
		Sellers:       NewGORMRepository[models.Seller](db),
		ping:          sqlDB.PingContext,
		close:         func(context.Context) error { return sqlDB.Close() },
	}, nil
}

// NewMemoryStore returns a store that keeps everything in process memory.
func NewMemoryStore() *Store {
	return &Store{
		Driver:        DriverMemory,
		Students:      NewMemoryRepository[models.Student](),
		BioData:       NewMemoryRepository[models.BioData](),
		Professionals: NewMemoryRepository[models.Professional](),
		BuyerCards:    NewMemoryRepository[models.BuyerCard](),
		Sellers:       NewMemoryRepository[models.Seller](),
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// redact hides credentials in a connection string before it reaches a log line.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
