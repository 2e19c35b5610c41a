package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/internal/repository"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
	"github.com/google/uuid"
)

// AccessExtension фиксированная единица продления доступа за одно paid-событие
const AccessExtension = 30 * 24 * time.Hour

// ReconcilerService применяет классифицированное вебхук-событие к записи
// подписчика и пишет каждый обработанный исход в журнал аудита.
type ReconcilerService struct {
	subs  repository.SubscriberRepository
	audit repository.AuditRepository
	log   *logger.Logger

	// now подменяется в тестах
	now func() time.Time
}

// NewReconcilerService создает новый сервис сверки
func NewReconcilerService(
	subs repository.SubscriberRepository,
	audit repository.AuditRepository,
	log *logger.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		subs:  subs,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// Process применяет нормализованное событие к состоянию подписчика.
//
// Не-ошибочные "нечего делать" исходы (нет email, событие не
// классифицировано, подписчик не найден, ручной доступ) возвращаются как
// результат, а не ошибка: провайдер не должен ретраить такие доставки.
// Ошибкой считается только отказ слоя данных.
func (s *ReconcilerService) Process(ctx context.Context, evt domain.NormalizedEvent, payload []byte) (domain.ReconcileResult, error) {
	if evt.Email == "" {
		result := domain.ReconcileResult{Outcome: domain.OutcomeIgnored, Note: domain.NoteMissingEmail}
		s.recordAudit(ctx, evt, result, payload)
		return result, nil
	}

	if !evt.Actionable() {
		result := domain.ReconcileResult{Outcome: domain.OutcomeIgnored, Note: domain.NoteEventNotActionable}
		s.recordAudit(ctx, evt, result, payload)
		return result, nil
	}

	sub, err := s.subs.GetByEmail(ctx, evt.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warnw("Webhook for unknown subscriber", "email", evt.Email, "event", evt.Event)
			result := domain.ReconcileResult{Outcome: domain.OutcomeNotFound, Note: domain.NoteProfileNotFound}
			s.recordAudit(ctx, evt, result, payload)
			return result, nil
		}
		return domain.ReconcileResult{}, fmt.Errorf("subscriber lookup failed: %w", err)
	}

	// Ручной доступ (admin/promo) никогда не перезаписывается платежными событиями
	if sub.ManuallyGranted() {
		s.log.Infow("Manual access protected, skipping update",
			"email", evt.Email, "origin", sub.AccessOrigin)
		result := domain.ReconcileResult{Outcome: domain.OutcomeSkipped, Note: domain.NoteManualAccessProtected}
		s.recordAudit(ctx, evt, result, payload)
		return result, nil
	}

	upd := s.computeUpdate(evt, sub)

	updated, err := s.subs.UpdateAccess(ctx, sub.ID, upd)
	if err != nil {
		return domain.ReconcileResult{}, fmt.Errorf("subscriber update failed: %w", err)
	}

	s.log.Infow("Subscriber access reconciled",
		"email", updated.Email,
		"classification", evt.Classification(),
		"accessUntil", updated.AccessUntil,
	)

	result := domain.ReconcileResult{Outcome: domain.OutcomeUpdated, Subscriber: updated}
	s.recordAudit(ctx, evt, result, payload)
	return result, nil
}

// computeUpdate вычисляет новые поля доступа.
//
// База продления — текущий access_until, если он строго в будущем, иначе
// текущее время сервера: оплата до истечения срока добавляет 30 дней к
// остатку, а не к моменту оплаты.
func (s *ReconcilerService) computeUpdate(evt domain.NormalizedEvent, sub *domain.Subscriber) domain.AccessUpdate {
	now := s.now()

	if evt.Paid {
		base := now
		if sub.AccessUntil != nil && sub.AccessUntil.After(now) {
			base = *sub.AccessUntil
		}
		until := base.Add(AccessExtension)
		return domain.AccessUpdate{
			Email:              evt.Email,
			AccessOrigin:       domain.AccessOriginPaid,
			AccessStatus:       domain.AccessStatusActive,
			SubscriptionStatus: domain.AccessStatusActive,
			AccessUntil:        &until,
		}
	}

	// blocked и не paid: доступ снимается полностью
	return domain.AccessUpdate{
		Email:              evt.Email,
		AccessOrigin:       domain.AccessOriginInactive,
		AccessStatus:       domain.AccessStatusInactive,
		SubscriptionStatus: domain.AccessStatusInactive,
		AccessUntil:        nil,
	}
}

// recordAudit пишет исход в журнал. Любая ошибка записи логируется и
// проглатывается: основной результат от журнала не зависит.
func (s *ReconcilerService) recordAudit(ctx context.Context, evt domain.NormalizedEvent, result domain.ReconcileResult, payload []byte) {
	entry := domain.AuditEntry{
		ID:             uuid.New(),
		Email:          evt.Email,
		Event:          evt.Event,
		Status:         evt.Status,
		Classification: evt.Classification(),
		Outcome:        string(result.Outcome),
		Note:           result.Note,
		ProviderRef:    evt.ProviderRef,
		Payload:        payload,
		CreatedAt:      s.now(),
	}

	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warnw("Failed to append audit entry", "error", err, "email", evt.Email, "outcome", entry.Outcome)
	}
}
