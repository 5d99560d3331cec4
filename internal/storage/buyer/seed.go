package buyer

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

var errEmptyID = errors.New("buyer id is empty")

// LoadSeedFile reads a JSON array of buyers from disk.
func LoadSeedFile(path string) ([]core.Buyer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	var buyers []core.Buyer
	if err := json.Unmarshal(data, &buyers); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return buyers, nil
}

// Seed saves every buyer into the store. Existing IDs are replaced.
func Seed(ctx context.Context, store Store, buyers []core.Buyer) error {
	for _, b := range buyers {
		if err := store.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
