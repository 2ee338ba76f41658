// Package utils provides small conversion helpers shared by the table sources.
package utils
