// Package gemini implements [folio.Studio] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. request.go turns folio values
// into GenerateContent calls, response.go normalizes the responses back into
// folio values, and client.go runs each call with a freshly resolved API key.
package gemini
