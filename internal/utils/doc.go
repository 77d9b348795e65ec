// Package utils provides small helpers for numeric conversion and log-safe rendering of secrets.
package utils
