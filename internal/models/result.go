package models

import (
	"encoding/json"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	ActionCreated  = "created"
	ActionModified = "modified"
)

// ItemResult is the outcome for one element of a batch upload. The natural
// key is reported under an entity-specific field ("product", "term", ...) so
// callers can locate and retry exactly the item that failed.
type ItemResult struct {
	Status  string `json:"status"`
	Action  string `json:"action,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Slug    string `json:"slug,omitempty"`

	// KeyField names the JSON field the natural key is reported under.
	KeyField string `json:"-"`
	Key      string `json:"-"`
}

func (r ItemResult) MarshalJSON() ([]byte, error) {
	type alias ItemResult
	raw, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}

	field := r.KeyField
	if field == "" {
		field = "key"
	}

	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	key, err := json.Marshal(r.Key)
	if err != nil {
		return nil, err
	}
	out[field] = key

	return json.Marshal(out)
}

// SuccessResult reports a created or modified entity.
func SuccessResult(keyField, key, action string, id int64) ItemResult {
	return ItemResult{
		Status:   StatusSuccess,
		Action:   action,
		ID:       id,
		KeyField: keyField,
		Key:      key,
	}
}

// ErrorResult reports a per-item failure without affecting the rest of the batch.
func ErrorResult(keyField, key, message string) ItemResult {
	return ItemResult{
		Status:   StatusError,
		Message:  message,
		KeyField: keyField,
		Key:      key,
	}
}

// BatchResult collects item results in input order. It is owned by exactly
// one handler invocation and never mutated after being returned.
type BatchResult struct {
	Items []ItemResult
}

func (b *BatchResult) Append(r ItemResult) {
	b.Items = append(b.Items, r)
}

func (b *BatchResult) Failed() int {
	n := 0
	for _, r := range b.Items {
		if r.Status == StatusError {
			n++
		}
	}
	return n
}

// StatusCode derives the aggregate HTTP status: 200 when every item
// succeeded, 207 when at least one failed.
func (b *BatchResult) StatusCode() int {
	if b.Failed() > 0 {
		return http.StatusMultiStatus
	}
	return http.StatusOK
}
