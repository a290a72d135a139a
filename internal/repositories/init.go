package repositories

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"listloop-server/configs"
	"listloop-server/internal/models"
	"listloop-server/pkg/logger"
)

type dbs struct {
	Postgres *gorm.DB
	Redis    *redis.Client
}

// DBS holds the shared connections, initialized once at startup.
var DBS dbs

func Init() {
	initPostgres()
	initRedis()
}

// initPostgres opens the connection and migrates the schema in dependency
// order.
func initPostgres() {
	host, port, err := net.SplitHostPort(configs.Configs.Postgres.Address)
	if err != nil {
		configs.Logger.Fatal("Invalid Postgres address", zap.Error(err))
		return
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		host,
		configs.Configs.Postgres.Username,
		configs.Configs.Postgres.Password,
		configs.Configs.Postgres.Database,
		port,
	)

	gormLogger := logger.NewZapGormLogger(
		configs.Logger,
		gormlogger.Warn,
		200*time.Millisecond,
		true,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		configs.Logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		return
	}

	if err := AutoMigrateInOrder(db); err != nil {
		configs.Logger.Fatal("Failed to migrate database", zap.Error(err))
		return
	}

	DBS.Postgres = db
	configs.Logger.Info("PostgreSQL connected successfully")
}

// AutoMigrateInOrder migrates every model, parents before children so the
// foreign keys resolve.
func AutoMigrateInOrder(db *gorm.DB) error {
	modelsInOrder := []interface{}{
		&models.User{},
		&models.TodoList{},
		&models.Collaborator{},
		&models.Task{},
		&models.SubTask{},
		&models.Comment{},
		&models.DirectMessage{},
	}

	for _, model := range modelsInOrder {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}

// initRedis connects the broadcast transport.
func initRedis() {
	opt := &redis.Options{
		Addr:     configs.Configs.Redis.Address,
		Username: configs.Configs.Redis.Username,
		Password: configs.Configs.Redis.Password,
		DB:       configs.Configs.Redis.Database,
	}

	if configs.Configs.Redis.Tls {
		opt.TLSConfig = &tls.Config{}
	}

	DBS.Redis = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := DBS.Redis.Ping(ctx).Result()
	if err != nil {
		configs.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		return
	}

	configs.Logger.Info("Redis connected successfully", zap.String("result", result))
}
