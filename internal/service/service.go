// Package service implements the application's business logic: the
// entry creation workflow, the journal repository facade, and user
// identity operations.
package service

import "github.com/Rishi-Dave/memoirAI/internal/validation"

// validate is a shared validator instance for request validation.
var validate = validation.New()
