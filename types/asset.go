package types

import (
	"fmt"
	"strings"
	"time"
)

type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
	AssetTypeEtf    AssetType = "ETF"
)

// ParseAssetType accepts the asset types known to the price store, in any case.
func ParseAssetType(s string) (AssetType, error) {
	switch t := AssetType(strings.ToUpper(strings.TrimSpace(s))); t {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeEtf:
		return t, nil
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

// Asset identifies an instrument in a price store. Stores without ids, such
// as CSV directories, leave ID zero.
type Asset struct {
	ID         int       `json:"id"`
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name"`
	Type       AssetType `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}
