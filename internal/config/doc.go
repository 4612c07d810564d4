// Package config loads and watches the editor configuration.
//
// Configuration is a TOML file layered over built-in defaults; a
// missing file simply yields the defaults. Values are validated on
// load and rejected with a typed ValidationError rather than silently
// clamped.
//
// Watcher reloads the file when it changes on disk, debouncing write
// bursts, and hands the result to a callback — the live-reload hook
// the surrounding application wires to a session.
package config
