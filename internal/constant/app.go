package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

const QUERY_TIMEOUT_DURATION = 5 * time.Second

const (
	DefaultPage     uint = 1
	DefaultPageSize uint = 10
	MaxPageSize     uint = 100
)
