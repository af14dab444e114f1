package config

import "errors"

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")
