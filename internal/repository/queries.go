package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type assetRow struct {
	ID         int32
	Ticker     string
	Name       string
	Type       string
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

const getAssetByTicker = `-- name: GetAssetByTicker :one
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1
`

func (q *Queries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	row := q.db.QueryRow(ctx, getAssetByTicker, ticker)
	var a assetRow
	err := row.Scan(&a.ID, &a.Ticker, &a.Name, &a.Type, &a.CreatedAt, &a.ModifiedAt)
	return a, err
}

const upsertAsset = `-- name: UpsertAsset :one
INSERT INTO assets (ticker, name, type, created_at, modified_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (ticker) DO UPDATE SET name = EXCLUDED.name, modified_at = now()
RETURNING id
`

func (q *Queries) UpsertAsset(ctx context.Context, ticker, name, assetType string) (int32, error) {
	var id int32
	err := q.db.QueryRow(ctx, upsertAsset, ticker, name, assetType).Scan(&id)
	return id, err
}

type getAggregatesParams struct {
	TimeBucket string
	AssetID    int32
	Starttime  time.Time
	Endtime    time.Time
}

type aggregateRow struct {
	Bucket  time.Time
	AssetID int32
	Open    decimal.Decimal
	High    decimal.Decimal
	Low     decimal.Decimal
	Close   decimal.Decimal
	Volume  decimal.Decimal
}

// Rows without a close never leave the database.
const getAggregates = `-- name: GetAggregates :many
SELECT time_bucket($1::interval, time) AS bucket,
       asset_id,
       first(open, time) AS open,
       max(high)         AS high,
       min(low)          AS low,
       last(close, time) AS close,
       sum(volume)       AS volume
FROM candles
WHERE asset_id = $2
  AND time >= $3
  AND time < $4
  AND close IS NOT NULL
GROUP BY bucket, asset_id
ORDER BY bucket
`

func (q *Queries) GetAggregates(ctx context.Context, arg getAggregatesParams) ([]aggregateRow, error) {
	rows, err := q.db.Query(ctx, getAggregates, arg.TimeBucket, arg.AssetID, arg.Starttime, arg.Endtime)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (aggregateRow, error) {
		var r aggregateRow
		err := row.Scan(&r.Bucket, &r.AssetID, &r.Open, &r.High, &r.Low, &r.Close, &r.Volume)
		return r, err
	})
}

var candleColumns = []string{"time", "asset_id", "open", "high", "low", "close", "volume"}

func (q *Queries) CopyCandles(ctx context.Context, rows [][]any) (int64, error) {
	return q.db.CopyFrom(ctx, pgx.Identifier{"candles"}, candleColumns, pgx.CopyFromRows(rows))
}
