// Package validator provides a small validation abstraction for request
// structs.
//
// Handlers and use cases depend on the Validator interface so validation can
// be shared and tested consistently. The concrete implementation uses
// go-playground/validator v10 with English translations.
package validator
