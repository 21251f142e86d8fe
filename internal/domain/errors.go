package domain

import "errors"

// Domain errors
var (
	ErrInvalidPattern     = errors.New("invalid filter pattern")
	ErrNoTargets          = errors.New("no targets selected")
	ErrClusterUnreachable = errors.New("cluster unreachable")
	ErrRawMode            = errors.New("terminal raw mode unavailable")
	ErrConfigNotFound     = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrPodNotFound        = errors.New("pod not found")
)
