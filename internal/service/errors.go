package service

import "errors"

// ErrNoData reports that no stored bars cover the requested window.
// Handlers map it to a 404.
var ErrNoData = errors.New("no price data available")
