package domain

import "errors"

var (
	ErrMalformedRecord  = errors.New("malformed match record")
	ErrNotFoundInMatch  = errors.New("player not found in match participants")
	ErrSummonerNotFound = errors.New("summoner not found")
	ErrUnknownRegion    = errors.New("unknown platform region")
)
