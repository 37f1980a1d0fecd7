// Package confloader loads configuration from files, environment variables
// and explicit overrides, using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Overrides loaded with LoadMap (command-line flags)
//  2. Environment variables
//  3. The YAML configuration file
//  4. Values already present in the target struct (defaults)
//
// Environment variables carry the prefix (RESPKV_ by default) and use a
// double underscore between levels, so RESPKV_SERVER__RESP__MAX_CLIENTS
// sets server.resp.max_clients.
//
// Watcher reports changes to a configuration file so callers can re-load
// the settings that may change at runtime.
package confloader
