package models

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetVector     = errors.New("no target vector")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target length does not match design matrix rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrInsufficientRows   = errors.New("fewer usable observations than model coefficients")
	ErrAllMissing         = errors.New("all response values are missing")
)
