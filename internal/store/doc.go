// Package store provides local persistence for moola's client state.
//
// It contains concrete implementations of the domain storage interfaces. All
// methods are concurrency-safe via internal locking. Stored files typically live
// under the user's configured home directory.
//
// The package includes:
//   - Token pair stores: FileTokenStore (sealed on disk), RedisTokenStore and
//     MemoryTokenStore
//   - Transaction history (HistoryFileStore)
//   - The device secret used to seal the token file (LoadOrCreateDeviceSecret)
package store
