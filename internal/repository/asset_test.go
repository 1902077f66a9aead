package repository

import (
	"context"
	"errors"
	"smacross/types"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockAssetsRepository struct {
	sqlError error
	upserted []string
}

func TestDatabase_GetAssetByTicker(t *testing.T) {
	type args struct {
		ticker string
	}
	tests := []struct {
		name    string
		args    args
		want    *types.Asset
		sqlcErr error
		wantErr error
	}{
		{"should throw ErrAssetNotFound", args{"AAPL"}, nil, pgx.ErrNoRows, ErrAssetNotFound},
		{"should pass through other errors", args{"AAPL"}, nil, errors.New("conn reset"), nil},
		{"should return asset", args{"AAPL"}, &types.Asset{Ticker: "AAPL", ID: 1}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				assets: &mockAssetsRepository{
					sqlError: tt.sqlcErr,
				},
			}
			got, err := db.GetAssetByTicker(context.Background(), tt.args.ticker)
			if tt.sqlcErr != nil {
				if err == nil {
					t.Fatalf("GetAssetByTicker() expected error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("GetAssetByTicker() error = %v, wantErr %v", err, tt.wantErr)
				}
				if tt.wantErr == nil && errors.Is(err, ErrAssetNotFound) {
					t.Errorf("GetAssetByTicker() error = %v, should not be ErrAssetNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAssetByTicker() unexpected error = %v", err)
			}
			if got.Ticker != tt.want.Ticker {
				t.Errorf("GetAssetByTicker() ticker = %v, want %v", got, tt.want)
			}
			if got.ID != tt.want.ID {
				t.Errorf("GetAssetByTicker() id = %v, want %v", got, tt.want)
			}
			if got.Type != types.AssetTypeStock {
				t.Errorf("GetAssetByTicker() type = %v, want %v", got.Type, types.AssetTypeStock)
			}
		})
	}
}

func TestDatabase_UpsertAsset_DefaultsToStock(t *testing.T) {
	repo := &mockAssetsRepository{}
	db := &Database{assets: repo}

	id, err := db.UpsertAsset(context.Background(), types.Asset{Ticker: "MSFT", Name: "Microsoft"})
	if err != nil {
		t.Fatalf("UpsertAsset() error = %v", err)
	}
	if id != 7 {
		t.Errorf("UpsertAsset() id = %d, want 7", id)
	}
	if len(repo.upserted) != 1 || repo.upserted[0] != "MSFT:STOCK" {
		t.Errorf("UpsertAsset() upserted = %v", repo.upserted)
	}
}

func (m *mockAssetsRepository) GetAssetByTicker(_ context.Context, ticker string) (assetRow, error) {
	if m.sqlError != nil {
		return assetRow{}, m.sqlError
	}
	curTime := time.UnixMilli(1)
	return assetRow{
		ID:         1,
		Ticker:     ticker,
		Name:       "Apple",
		Type:       string(types.AssetTypeStock),
		CreatedAt:  &curTime,
		ModifiedAt: &curTime,
	}, nil
}

func (m *mockAssetsRepository) UpsertAsset(_ context.Context, ticker, _, assetType string) (int32, error) {
	if m.sqlError != nil {
		return 0, m.sqlError
	}
	m.upserted = append(m.upserted, ticker+":"+assetType)
	return 7, nil
}
