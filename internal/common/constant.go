package common

// APIKeyHeaderName is the HTTP header used to carry the shared API key on
// authenticated requests.
const APIKeyHeaderName = "X-API-Key"
