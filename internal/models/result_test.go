package models

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemResultMarshalUsesKeyField(t *testing.T) {
	r := SuccessResult("product", "A1", ActionCreated, 42)
	r.Lang = "nl"

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "A1", out["product"])
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "created", out["action"])
	assert.Equal(t, float64(42), out["id"])
	assert.Equal(t, "nl", out["lang"])
	assert.NotContains(t, out, "key_field")
	assert.NotContains(t, out, "message")
}

func TestErrorResultMarshal(t *testing.T) {
	r := ErrorResult("term", "red", "Attribute color not found")

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "red", out["term"])
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "Attribute color not found", out["message"])
	assert.NotContains(t, out, "action")
	assert.NotContains(t, out, "id")
}

func TestBatchResultStatusCode(t *testing.T) {
	b := &BatchResult{}
	assert.Equal(t, http.StatusOK, b.StatusCode())

	b.Append(SuccessResult("product", "A1", ActionCreated, 1))
	assert.Equal(t, http.StatusOK, b.StatusCode())
	assert.Equal(t, 0, b.Failed())

	b.Append(ErrorResult("product", "B2", "boom"))
	assert.Equal(t, http.StatusMultiStatus, b.StatusCode())
	assert.Equal(t, 1, b.Failed())
}

func TestBatchResultPreservesOrder(t *testing.T) {
	b := &BatchResult{}
	for _, sku := range []string{"A1", "B2", "C3"} {
		b.Append(SuccessResult("product", sku, ActionCreated, 1))
	}

	require.Len(t, b.Items, 3)
	assert.Equal(t, "A1", b.Items[0].Key)
	assert.Equal(t, "B2", b.Items[1].Key)
	assert.Equal(t, "C3", b.Items[2].Key)
}
