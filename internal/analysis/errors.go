package analysis

import "errors"

var errMissingResult = errors.New("no result")
