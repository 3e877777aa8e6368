package contentstore

import "errors"

// ErrKeyRequired rejects rows with a blank key.
var ErrKeyRequired = errors.New("contentstore: key is required")

// ErrNotConfigured indicates the store was constructed without a database.
var ErrNotConfigured = errors.New("contentstore: store requires a database")
