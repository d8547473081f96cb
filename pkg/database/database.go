// Package database manages the optional MongoDB connection.
//
// The connection is established in the background: Start never blocks on the
// database and never fails because it is unreachable. Callers check State or
// use Database, which returns ErrUnavailable until the connection is verified.
package database

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/JaimeStill/route-shell/pkg/lifecycle"
)

// ErrUnavailable is returned when the database is disabled or not connected.
var ErrUnavailable = errors.New("database unavailable")

// State describes the connection state of the database handle.
type State int32

const (
	// StateDisabled means no connection string is configured.
	StateDisabled State = iota
	// StateConnecting means a connection string is configured and the
	// connection has not been verified yet.
	StateConnecting
	// StateConnected means the server answered a ping.
	StateConnected
	// StateUnavailable means the connection attempt failed.
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// System is an optional database handle.
type System interface {
	State() State
	// Available reports whether the connection has been verified.
	Available() bool
	// Database returns the configured database, or ErrUnavailable until the
	// connection has been verified.
	Database() (*mongo.Database, error)
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	cfg    *Config
	client *mongo.Client
	logger *slog.Logger
	state  atomic.Int32
}

// New creates the database system. No client is created until Start, so a
// System that is never started holds no connections or background monitors.
func New(cfg *Config, logger *slog.Logger) System {
	d := &database{
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}

	if !cfg.Enabled() {
		d.state.Store(int32(StateDisabled))
		return d
	}

	d.state.Store(int32(StateConnecting))
	return d
}

func (d *database) State() State {
	return State(d.state.Load())
}

func (d *database) Available() bool {
	return d.State() == StateConnected
}

func (d *database) Database() (*mongo.Database, error) {
	if d.State() != StateConnected {
		return nil, ErrUnavailable
	}
	return d.client.Database(d.cfg.Name), nil
}

// Start creates the client, verifies the connection in the background, and
// registers disconnect on shutdown. It returns immediately. A misconfigured
// connection string is not an error: the System reports StateUnavailable.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	if !d.cfg.Enabled() {
		return nil
	}

	timeout := d.cfg.ConnTimeoutDuration()
	opts := options.Client().
		ApplyURI(d.cfg.URL).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		d.logger.Error("database client init failed", "error", err)
		d.state.Store(int32(StateUnavailable))
		return nil
	}
	d.client = client

	go func() {
		ctx, cancel := context.WithTimeout(lc.Context(), timeout)
		defer cancel()

		if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
			d.state.CompareAndSwap(int32(StateConnecting), int32(StateUnavailable))
			d.logger.Error("database connection failed", "error", err)
			return
		}

		if d.state.CompareAndSwap(int32(StateConnecting), int32(StateConnected)) {
			d.logger.Info("database connected", "name", d.cfg.Name)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.state.Store(int32(StateUnavailable))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := d.client.Disconnect(ctx); err != nil {
			d.logger.Error("database disconnect failed", "error", err)
			return
		}
		d.logger.Info("database disconnected")
	})

	return nil
}
