package main

import "errors"

var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownDriver  = errors.New("unknown store driver")
)
