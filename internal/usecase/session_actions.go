package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"pagelens/pkg/apperr"
	"pagelens/pkg/logg"
	"pagelens/pkg/tracing"
)

func (s *SessionService) Click(ctx context.Context, ref string) (err error) {
	const op = "Click"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Ref, ref))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("ref", ref))
	defer func() {
		step.End(err)
	}()

	desc, err := s.resolveRef(op, ref)
	if err != nil {
		return err
	}

	step.AddEvent("clicking element")

	if err := s.browser.Click(ctx, desc); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "click_failed",
			apperr.MetaStage:  apperr.StageInteraction,
			apperr.MetaRef:    ref,
		})
	}

	return nil
}

func (s *SessionService) Fill(ctx context.Context, ref, value string) (err error) {
	const op = "Fill"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Ref, ref))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("ref", ref))
	defer func() {
		step.End(err)
	}()

	desc, err := s.resolveRef(op, ref)
	if err != nil {
		return err
	}

	step.AddEvent("filling field")

	if err := s.browser.Fill(ctx, desc, value); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "fill_failed",
			apperr.MetaStage:  apperr.StageInteraction,
			apperr.MetaRef:    ref,
		})
	}

	return nil
}

func (s *SessionService) Press(ctx context.Context, key string) (err error) {
	const op = "Press"
	logger := s.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("key", key))
	defer func() {
		step.End(err)
	}()

	if key == "" {
		return apperr.InvalidReqError(op, "key", errors.New("key cannot be empty"))
	}

	if err := s.browser.Press(ctx, key); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "press_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	return nil
}

func (s *SessionService) Text(ctx context.Context, ref string) (text string, err error) {
	const op = "Text"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Ref, ref))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("ref", ref))
	defer func() {
		step.End(err)
	}()

	desc, err := s.resolveRef(op, ref)
	if err != nil {
		return "", err
	}

	text, err = s.browser.TextContent(ctx, desc)
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "text_content_failed",
			apperr.MetaStage:  apperr.StageInteraction,
			apperr.MetaRef:    ref,
		})
	}

	return text, nil
}
