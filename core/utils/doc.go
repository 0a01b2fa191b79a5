// Package utils provides small conversion helpers shared by the drivers,
// such as parsing environment values and query parameters.
package utils
