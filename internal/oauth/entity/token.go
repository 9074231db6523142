package entity

// TokenPayload is the provider's token response, relayed to the caller as-is
// inside the success envelope. Shapes differ per provider, so it stays
// schemaless.
type TokenPayload map[string]any
