package usecase

// MissingScopes is exported for testing
var MissingScopes = missingScopes
