// Package config loads the logger settings.
//
// Values come from three layers, later ones winning:
//
//  1. Default()
//  2. an optional TOML file
//  3. ATHOME_LOG_* environment variables
//
// Example file:
//
//	level = "warning"
//	timezone = "utc"
//	time_format = "[%Y-%m-%d %H:%M:%S]"
//	color = "off"
//
//	[file]
//	enabled = true
//	dir = "/var/log/athome"
//	keep = 30
//
// The same file expressed as environment variables:
//
//	ATHOME_LOG_LEVEL=warning
//	ATHOME_LOG_TIMEZONE=utc
//	ATHOME_LOG_TIME_FORMAT="[%Y-%m-%d %H:%M:%S]"
//	ATHOME_LOG_COLOR=off
//	ATHOME_LOG_FILE_ENABLED=true
//	ATHOME_LOG_FILE_DIR=/var/log/athome
//	ATHOME_LOG_FILE_KEEP=30
package config
