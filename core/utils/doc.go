// Package utils provides common utility functions for the media-manager
// application. It includes loose type-conversion helpers used when picking
// apart provider webhook payloads, whose field types are not stable across
// event versions.
package utils
