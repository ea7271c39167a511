// Package domain defines the core business entities and errors
// for AI-assisted study content generation.
package domain
