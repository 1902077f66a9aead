package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smacross/types"

	"github.com/jackc/pgx/v5"
)

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db *Database) GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error) {
	asset, err := db.assets.GetAssetByTicker(ctx, ticker)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	out := &types.Asset{
		ID:     int(asset.ID),
		Ticker: asset.Ticker,
		Name:   asset.Name,
		Type:   types.AssetType(asset.Type),
	}
	if asset.CreatedAt != nil {
		out.CreatedAt = *asset.CreatedAt
	}
	if asset.ModifiedAt != nil {
		out.ModifiedAt = *asset.ModifiedAt
	}
	return out, nil
}

// UpsertAsset creates the asset or renames an existing one, returning its id.
func (db *Database) UpsertAsset(ctx context.Context, asset types.Asset) (int, error) {
	assetType := asset.Type
	if assetType == "" {
		assetType = types.AssetTypeStock
	}
	id, err := db.assets.UpsertAsset(ctx, asset.Ticker, asset.Name, string(assetType))
	if err != nil {
		return 0, fmt.Errorf("upsert asset %s: %w", asset.Ticker, err)
	}
	return int(id), nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
