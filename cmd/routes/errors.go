package main

import "errors"

var (
	errNoRoute  = errors.New("no route matches")
	errBadParam = errors.New("parameter must look like name=value")
)
