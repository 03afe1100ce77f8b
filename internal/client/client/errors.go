package client

import "errors"

var ErrIncompleteResponse = errors.New("incomplete response")
