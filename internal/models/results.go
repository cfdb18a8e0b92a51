package models

// InsertResult mirrors the insert acknowledgement returned to clients.
// InsertedID is nil when nothing was inserted.
type InsertResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// UpdateResult reports how many records matched and changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many records were removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
