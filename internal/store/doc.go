// Package store persists the configuration document in a key-value backend.
//
// The document lives under a single key (configJson by default). Backends:
//   - [SQLiteKV] : rows of the kv_store table created by the embedded migrations
//   - [RedisKV] : a plain Redis string without expiry
//   - [MemoryKV] : a mutex-guarded map for tests and throwaway sessions
//
// [ConfigStore] layers the document operations on top of a [KV]: load, save with a
// lastModified stamp, clear, export to config.json and wholesale import.
package store
