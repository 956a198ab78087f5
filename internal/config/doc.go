// Package config owns the agent's configuration: the YAML file with its raw
// option-store mapping, the typed per-tick snapshot, and the fsnotify-based
// hot-reload watcher.
//
// The split matters: Load only fails when the file itself is unreadable or
// malformed, which is fatal at startup. Option-level validity (mandatory
// options, compiling regex, readable command files, existing VRF device) is
// checked by BuildSnapshot and is recoverable — an invalid option set merely
// suspends health checks until a reload corrects it.
//
// Recognized options and defaults follow the daemon's documented interface:
// IPv4, PROTOCOL (http|https), TCPPORT, REGEX, CONF_FAIL, CONF_RECOVER are
// mandatory; USERNAME, PASSWORD, URLPATH (default "/"), VRF are optional;
// CHECKINTERVAL (5s), FAILCOUNT (2), HTTPTIMEOUT (20s) default when unset.
package config
