// Package service implements the application logic between the HTTP
// handlers and the stores.
package service

import "github.com/aivladyslavai/MarketingKreis-sub000/internal/validation"

// validate is the shared request validator for all services.
var validate = validation.New()
