package domain

// KeyPrefix namespaces every key this service writes to the store.
// Overridable via config (storage.key_prefix); this is the default.
const KeyPrefix = "sliceboard:"
