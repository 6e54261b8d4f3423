package storage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inslake/inslake/pkg/storage"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		msg   string
		stage string
		name  string
		res   string
	}{
		{"bronze", storage.StageBronze, "erp_policies",
			"bronze/erp_policies"},
		{"silver", storage.StageSilver, "crm_clients",
			"silver/crm_clients"},
		{"gold", storage.StageGold, "dim_clients", "gold/dim_clients"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, storage.TableName(v.stage, v.name), v.msg)
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("table %q: %w", "bronze/x", storage.ErrNotFound)
	assert.True(t, storage.IsNotFound(wrapped))
	assert.False(t, storage.IsTransient(wrapped))

	transient := fmt.Errorf("timeout: %w", storage.ErrTransient)
	assert.True(t, storage.IsTransient(transient))
	assert.False(t, storage.IsNotFound(transient))

	assert.False(t, storage.IsNotFound(errors.New("other")))
	assert.False(t, storage.IsTransient(nil))
}
