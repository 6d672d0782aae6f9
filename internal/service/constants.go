package service

// DefaultMaxTokens bounds the generated description; empirically enough for the five sections.
const DefaultMaxTokens = 2560
