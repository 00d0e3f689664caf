package main

import "errors"

var (
	errNoDecryption  = errors.New("no successful decryption")
	errLowConfidence = errors.New("decryption confidence below 0.5")
)
