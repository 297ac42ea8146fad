package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	deleted []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGoogleSubject(_ context.Context, subject string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleSubject != nil && *u.GoogleSubject == subject {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*entity.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, domainerror.ErrProfileNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) FindBySalaryDay(context.Context, []int) ([]*entity.Profile, error) {
	return nil, nil
}

// fakePasswordService stores passwords as "hashed:<plain>".
type fakePasswordService struct{}

func (fakePasswordService) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) Matches(hash, password string) bool {
	return hash != "" && hash == "hashed:"+password
}

func (fakePasswordService) CheckStrength(password string) error {
	if len(password) < 6 {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "too short", domainerror.ErrWeakPassword)
	}
	return nil
}

type issuedRefresh struct {
	userID     uuid.UUID
	persistent bool
	revoked    bool
}

type fakeTokenService struct {
	refresh    map[string]*issuedRefresh
	revokedAll []uuid.UUID
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{refresh: map[string]*issuedRefresh{}}
}

func (s *fakeTokenService) IssueSession(_ context.Context, user *entity.User, persistent bool) (*adapter.SessionTokens, error) {
	token := "refresh-" + uuid.NewString()
	s.refresh[token] = &issuedRefresh{userID: user.ID, persistent: persistent}
	return &adapter.SessionTokens{AccessToken: "access-" + user.ID.String(), RefreshToken: token}, nil
}

func (s *fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) claims(token string) (*adapter.TokenClaims, *issuedRefresh, error) {
	issued, ok := s.refresh[token]
	if !ok {
		return nil, nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{
		UserID:     issued.userID,
		Persistent: issued.persistent,
		ExpiresAt:  time.Now().Add(time.Hour),
	}, issued, nil
}

func (s *fakeTokenService) RedeemRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, issued, err := s.claims(token)
	if err != nil {
		return nil, err
	}
	if issued.revoked {
		return nil, domainerror.ErrInvalidToken
	}
	issued.revoked = true
	return claims, nil
}

func (s *fakeTokenService) RevokeRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, issued, err := s.claims(token)
	if err != nil {
		return nil, err
	}
	issued.revoked = true
	return claims, nil
}

func (s *fakeTokenService) RevokeSessions(_ context.Context, userID uuid.UUID) error {
	s.revokedAll = append(s.revokedAll, userID)
	for _, issued := range s.refresh {
		if issued.userID == userID {
			issued.revoked = true
		}
	}
	return nil
}

type fakeMailQueue struct {
	cancelled map[string]string
}

func (q *fakeMailQueue) Enqueue(context.Context, *entity.EmailJob) error { return nil }

func (q *fakeMailQueue) DueJobs(context.Context, time.Time, int) ([]*entity.EmailJob, error) {
	return nil, nil
}

func (q *fakeMailQueue) Save(context.Context, *entity.EmailJob) error { return nil }

func (q *fakeMailQueue) CancelPending(_ context.Context, email, reason string) (int64, error) {
	if q.cancelled == nil {
		q.cancelled = map[string]string{}
	}
	q.cancelled[email] = reason
	return 1, nil
}

type fakeEmailService struct {
	welcome []adapter.QueueWelcomeInput
	resets  []adapter.QueuePasswordResetInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(_ context.Context, in adapter.QueuePasswordResetInput) error {
	s.resets = append(s.resets, in)
	return nil
}

func (s *fakeEmailService) QueueWelcomeEmail(_ context.Context, in adapter.QueueWelcomeInput) error {
	s.welcome = append(s.welcome, in)
	return nil
}

func (s *fakeEmailService) QueueGoalReachedEmail(context.Context, adapter.QueueGoalReachedInput) error {
	return nil
}

func (s *fakeEmailService) QueueSalaryDayEmail(context.Context, adapter.QueueSalaryDayInput) error {
	return nil
}

type recordingPublisher struct {
	events []*entity.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *entity.ChangeEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) has(collection entity.Collection, op entity.ChangeOperation) bool {
	for _, e := range p.events {
		if e.Collection == collection && e.Operation == op {
			return true
		}
	}
	return false
}

type fakeVerifier struct {
	identity *adapter.FederatedIdentity
	err      error
}

func (v *fakeVerifier) Verify(context.Context, string) (*adapter.FederatedIdentity, error) {
	return v.identity, v.err
}

func (v *fakeVerifier) IsAvailable() bool { return true }
