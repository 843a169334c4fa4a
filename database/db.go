package database

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/quorum/shared"
	"github.com/google/uuid"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	createSignalTableSQL   = "CREATE TABLE IF NOT EXISTS signal (id TEXT PRIMARY KEY, market TEXT, timeframe TEXT, direction TEXT, confidence TEXT, entryprice REAL, stoploss REAL, takeprofitone REAL, takeprofittwo REAL, leverage REAL, contributors TEXT, createdon INTEGER)"
	createMetadataTableSQL = "CREATE TABLE IF NOT EXISTS metadata (id TEXT PRIMARY KEY, total INTEGER, longs INTEGER, shorts INTEGER, neutrals INTEGER, createdon INTEGER)"
	persistSignalSQL       = "INSERT INTO signal(id, market, timeframe, direction, confidence, entryprice, stoploss, takeprofitone, takeprofittwo, leverage, contributors, createdon) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)"
	findMetadataSQL        = "SELECT * FROM metadata WHERE id = ?"
	updateMetadataSQL      = "UPDATE metadata SET total = total + 1, longs = longs + ?, shorts = shorts + ?, neutrals = neutrals + ? WHERE id = ?"
	persistMetadataSQL     = "INSERT INTO metadata(id, total, longs, shorts, neutrals, createdon) VALUES(?,?,?,?,?,?)"
)

// SignalStorer defines the requirements for storing signals.
type SignalStorer interface {
	// PersistSignal stores the provided signal to the database.
	PersistSignal(ctx context.Context, signal *shared.Signal) error
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the SignalStorer interface.
var _ SignalStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createSignalTableSQL},
		{SQL: createMetadataTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// generateMetadataID generates deterministic ids for metadata using the
// current month, week and market.
func generateMetadataID(currentTime time.Time, market string) string {
	month := currentTime.Month().String()
	week := currentTime.Day() / 7

	id := fmt.Sprintf("%s-Week-%d-%s", month, week, market)
	return id
}

// PersistSignal stores the provided signal to the database and updates the
// per-market signal metadata counts.
func (db *Database) PersistSignal(ctx context.Context, signal *shared.Signal) error {
	contributors, err := json.Marshal(signal.ContributingIndicators)
	if err != nil {
		return fmt.Errorf("encoding signal contributors: %v -> %s", err, spew.Sdump(signal))
	}

	_, err = db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL: persistSignalSQL,
			PositionalParams: []any{uuid.NewString(), signal.Symbol, signal.Timeframe.String(),
				signal.Direction.String(), signal.Confidence.String(), signal.EntryPrice,
				signal.StopLoss, signal.TakeProfitOne, signal.TakeProfitTwo, signal.Leverage,
				string(contributors), signal.CreatedOn.Unix()},
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	var long, short, neutral int
	switch signal.Direction {
	case shared.Long:
		long++
	case shared.Short:
		short++
	case shared.Neutral:
		neutral++
	default:
		db.cfg.Logger.Error().Msgf("unexpected signal direction for metadata calculations: %s",
			spew.Sdump(signal))
	}

	id := generateMetadataID(signal.CreatedOn, signal.Symbol)
	resp, err := db.client.QuerySingle(ctx, findMetadataSQL, id)
	if err != nil {
		return err
	}

	exists := len(resp.GetQueryResultsAssoc()) > 0
	switch {
	case exists:
		resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
			{
				SQL:              updateMetadataSQL,
				PositionalParams: []any{long, short, neutral, id},
			},
		}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
		if err != nil {
			return err
		}
		has, idx, errStr := resp.HasError()
		if has {
			return fmt.Errorf("updating metadata %s: %d -> %s", id, idx, errStr)
		}
	default:
		resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
			{
				SQL:              persistMetadataSQL,
				PositionalParams: []any{id, 1, long, short, neutral, signal.CreatedOn.Unix()},
			},
		}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
		if err != nil {
			return err
		}
		has, idx, errStr := resp.HasError()
		if has {
			return fmt.Errorf("persisting metadata %s: %d -> %s", id, idx, errStr)
		}
	}

	return nil
}
