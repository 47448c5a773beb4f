package main

import "errors"

var (
	errUsage     = errors.New("wrong number of arguments")
	errNotAtomic = errors.New("cas requires an atomic: uri")
)
