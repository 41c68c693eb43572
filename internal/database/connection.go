package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// Connection holds the MongoDB client and the service database
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *DatabaseConfig
}

var (
	instance *Connection
	once     sync.Once
)

// GetConnection returns the singleton MongoDB connection, creating it from
// environment configuration on first use.
func GetConnection() (*Connection, error) {
	var err error
	once.Do(func() {
		instance, err = newConnection(GetDatabaseConfig())
	})
	if instance == nil && err == nil {
		err = fmt.Errorf("mongodb connection previously failed to initialize")
	}
	return instance, err
}

func newConnection(config *DatabaseConfig) (*Connection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.URI)
	if config.AppName != "" {
		clientOptions.SetAppName(config.AppName)
	}

	masked := config.MaskSensitiveData()
	logger.Info("Connecting to MongoDB",
		"database", masked.DatabaseName,
		"uri", masked.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	conn := &Connection{
		Client:   client,
		Database: client.Database(config.DatabaseName),
		Config:   config,
	}

	logger.Info("Connected to MongoDB", "database", config.DatabaseName)
	return conn, nil
}

// Disconnect closes the MongoDB connection
func (c *Connection) Disconnect() error {
	if c.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Client.Disconnect(ctx)
}

// IsConnected reports whether the connection currently answers pings
func (c *Connection) IsConnected() bool {
	if c.Client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.Client.Ping(ctx, readpref.Primary()) == nil
}

// GetCollection returns a collection in the service database
func (c *Connection) GetCollection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}
