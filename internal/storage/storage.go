package storage

import "stakeScope/internal/model"

// DecodeErrorSink receives the accounts that were skipped during a build.
type DecodeErrorSink interface {
	PutDecodeErrors(errs []model.DecodeError) error
}
