// Package models defines the JSON shapes exchanged with the bimod API.
//
// Result objects are decoded as-is: optional fields are pointers or carry
// omitempty, and nothing is validated client-side.
package models
