package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason   = "reason"
	MetaStage    = "stage"
	MetaField    = "field"
	MetaRef      = "ref"
	MetaRegion   = "region"
	MetaSelector = "selector"
	MetaURL      = "url"

	StageBrowser     = "browser"
	StageNavigation  = "navigation"
	StageTree        = "tree"
	StageSnapshot    = "snapshot"
	StageRegions     = "regions"
	StageCursor      = "cursor"
	StageInteraction = "interaction"

	CodeInternal        = "internal"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeAmbiguousRef    = "ambiguous_ref"
	CodeStaleRef        = "stale_ref"
	CodeTimeout         = "timeout"
	CodeCancelled       = "cancelled"
	CodeBrowserNotReady = "browser_not_ready"
	CodeActionFailed    = "action_failed"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, errors.New(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func NotFoundError(op string, err error) error {
	return Wrap(op, CodeNotFound, err, map[string]any{
		MetaReason: "not_found",
	})
}

// Code walks the error chain and returns the outermost apperr code,
// or CodeInternal when no *Error is present.
func Code(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}

		err = u.Unwrap()
	}

	return CodeInternal
}
