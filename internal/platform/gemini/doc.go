// Package gemini implements the generation.TextGenerator interface
// using Google's Gemini API via the google.golang.org/genai client.
package gemini
