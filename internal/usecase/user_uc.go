package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/mailer"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/aden91/tidar-web-app/internal/platform/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("tidar-web-app/usecase")

// EventPublisher delivers member events. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

// UserUsecase implements registration, login sync, profile fetch and admin verification.
type UserUsecase struct {
	repo               domain.UserRepository
	events             EventPublisher
	mailer             mailer.Mailer
	metrics            *metrics.MetricsManager
	defaultDisplayName string
	now                func() time.Time
	logger             *logger.Logger
}

// NewUserUsecase creates a new UserUsecase. m may be nil.
func NewUserUsecase(
	repo domain.UserRepository,
	events EventPublisher,
	mail mailer.Mailer,
	m *metrics.MetricsManager,
	defaultDisplayName string,
	log *logger.Logger,
) *UserUsecase {
	return &UserUsecase{
		repo:               repo,
		events:             events,
		mailer:             mail,
		metrics:            m,
		defaultDisplayName: defaultDisplayName,
		now:                func() time.Time { return time.Now().UTC() },
		logger:             log.Named("UserUsecase"),
	}
}

// RegisterInput is the full profile submitted on registration.
type RegisterInput struct {
	UID           string
	Name          string
	Birthplace    string
	Birthdate     string
	Province      string
	City          string
	District      string
	Subdistrict   string
	AddressDetail string
	Email         string
	Phone         string
}

// SyncInput carries the optional profile values sent on every sign-in.
type SyncInput struct {
	UID   string
	Name  string
	Email string
	Phone string
}

// requireOwner rejects any caller that is not the subject uid.
func requireOwner(id *domain.Identity, uid string) error {
	if !id.Owns(uid) {
		return domain.ErrForbidden
	}
	return nil
}

// Register creates the caller's record once. A second registration is ErrAlreadyRegistered.
func (uc *UserUsecase) Register(ctx context.Context, id *domain.Identity, in RegisterInput) error {
	ctx, span := tracer.Start(ctx, "UserUsecase.Register", trace.WithAttributes(attribute.String("member.uid", in.UID)))
	defer span.End()

	if err := requireOwner(id, in.UID); err != nil {
		uc.logger.Warn("Registration rejected: UID mismatch", zap.String("uid", in.UID))
		return err
	}

	_, err := uc.repo.Get(ctx, in.UID)
	switch {
	case err == nil:
		return domain.ErrAlreadyRegistered
	case !errors.Is(err, domain.ErrNotFound):
		return uc.fail(span, "Failed to look up member", in.UID, err)
	}

	user := domain.NewUser(in.UID, uc.now())
	user.Name = domain.Opt(in.Name)
	user.Email = domain.Opt(in.Email)
	user.Phone = domain.Opt(in.Phone)
	user.Birthplace = domain.Opt(in.Birthplace)
	user.Birthdate = domain.Opt(in.Birthdate)
	user.Address = domain.Address{
		Province:    domain.Opt(in.Province),
		City:        domain.Opt(in.City),
		District:    domain.Opt(in.District),
		Subdistrict: domain.Opt(in.Subdistrict),
		Detail:      domain.Opt(in.AddressDetail),
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return err
		}
		return uc.fail(span, "Failed to create member", in.UID, err)
	}

	if uc.metrics != nil {
		uc.metrics.MembersRegistered.Inc()
	}
	uc.publish(ctx, domain.EventMemberRegistered, in.UID)
	uc.logger.Info("Member registered", zap.String("uid", in.UID))
	return nil
}

// Sync creates a minimal record on first sign-in and otherwise refreshes the login
// snapshot. created reports which branch ran.
func (uc *UserUsecase) Sync(ctx context.Context, id *domain.Identity, in SyncInput) (created bool, err error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Sync", trace.WithAttributes(attribute.String("member.uid", in.UID)))
	defer span.End()

	if err := requireOwner(id, in.UID); err != nil {
		uc.logger.Warn("Sync rejected: UID mismatch", zap.String("uid", in.UID))
		return false, err
	}

	existing, err := uc.repo.Get(ctx, in.UID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user := domain.NewUser(in.UID, uc.now())
		user.Name = domain.Coalesce(domain.Opt(in.Name), domain.Opt(id.Name), domain.Opt(uc.defaultDisplayName))
		user.Email = domain.Coalesce(domain.Opt(in.Email), domain.Opt(id.Email))
		user.Phone = domain.Coalesce(domain.Opt(in.Phone), domain.Opt(id.Phone))

		err = uc.repo.Create(ctx, user)
		if err == nil {
			uc.countSync("created")
			uc.publish(ctx, domain.EventMemberCreated, in.UID)
			uc.logger.Info("Member profile created on sign-in", zap.String("uid", in.UID))
			return true, nil
		}
		if !errors.Is(err, domain.ErrAlreadyRegistered) {
			return false, uc.fail(span, "Failed to create member on sign-in", in.UID, err)
		}
		// Another request created the record first; continue as a login.
		uc.logger.Info("Concurrent sign-in created the profile first", zap.String("uid", in.UID))
		if existing, err = uc.repo.Get(ctx, in.UID); err != nil {
			return false, uc.fail(span, "Failed to re-read member after concurrent create", in.UID, err)
		}
	case err != nil:
		return false, uc.fail(span, "Failed to look up member", in.UID, err)
	}

	update := domain.LoginUpdate{
		LastLogin: uc.now(),
		Name:      domain.Coalesce(domain.Opt(in.Name), existing.Name),
		Email:     domain.Coalesce(domain.Opt(in.Email), existing.Email),
		Phone:     domain.Coalesce(domain.Opt(in.Phone), existing.Phone),
	}
	if err := uc.repo.UpdateLogin(ctx, in.UID, update); err != nil {
		return false, uc.fail(span, "Failed to update member login", in.UID, err)
	}

	uc.countSync("updated")
	uc.publish(ctx, domain.EventMemberLogin, in.UID)
	uc.logger.Debug("Member login recorded", zap.String("uid", in.UID))
	return false, nil
}

// Get returns the caller's own record.
func (uc *UserUsecase) Get(ctx context.Context, id *domain.Identity, uid string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Get", trace.WithAttributes(attribute.String("member.uid", uid)))
	defer span.End()

	if err := requireOwner(id, uid); err != nil {
		uc.logger.Warn("Profile fetch rejected: not the owner", zap.String("uid", uid))
		return nil, err
	}

	user, err := uc.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, uc.fail(span, "Failed to fetch member", uid, err)
	}
	return user, nil
}

// Verify marks a member as verified. Verifying twice is a harmless repeat write.
func (uc *UserUsecase) Verify(ctx context.Context, uid string) error {
	ctx, span := tracer.Start(ctx, "UserUsecase.Verify", trace.WithAttributes(attribute.String("member.uid", uid)))
	defer span.End()

	if uid == "" {
		return fmt.Errorf("%w: member uid is required", domain.ErrInvalidInput)
	}

	user, err := uc.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return uc.fail(span, "Failed to look up member for verification", uid, err)
	}

	if err := uc.repo.MarkVerified(ctx, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return uc.fail(span, "Failed to mark member verified", uid, err)
	}

	if uc.metrics != nil {
		uc.metrics.MembersVerified.Inc()
	}
	uc.publish(ctx, domain.EventMemberVerified, uid)

	if user.Email != nil {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		if err := uc.mailer.SendVerificationNotice(*user.Email, name); err != nil {
			uc.logger.Warn("Failed to send verification notice", zap.String("uid", uid), zap.Error(err))
		}
	}

	uc.logger.Info("Member verified", zap.String("uid", uid))
	return nil
}

func (uc *UserUsecase) publish(ctx context.Context, subject, uid string) {
	event := domain.MemberEvent{
		EventID:    uuid.NewString(),
		Type:       subject,
		UID:        uid,
		OccurredAt: uc.now(),
	}
	if err := uc.events.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("Failed to publish member event", zap.String("subject", subject), zap.String("uid", uid), zap.Error(err))
	}
}

func (uc *UserUsecase) countSync(result string) {
	if uc.metrics != nil {
		uc.metrics.MemberSyncsTotal.WithLabelValues(result).Inc()
	}
}

func (uc *UserUsecase) fail(span trace.Span, msg, uid string, err error) error {
	uc.logger.Error(msg, zap.String("uid", uid), zap.Error(err))
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}
