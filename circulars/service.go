package circulars

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/users"
	"github.com/rs/zerolog"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Service publishes Circulars.
type Service struct {
	repo      Repo
	registrar Registrar
}

func NewService(repo Repo, registrar Registrar) *Service {
	return &Service{repo: repo, registrar: registrar}
}

// Submission is the user-supplied part of a new Circular.
type Submission struct {
	Subject string
	Body    string
}

// Publish assigns the next circular number, registers its DOI and stores it.
// A registration failure aborts publication and nothing is stored.
func (s *Service) Publish(ctx context.Context, user *users.User, submission Submission) (Circular, error) {
	if user == nil {
		return Circular{}, apperrors.ErrUnauthenticated
	}
	subject := strings.TrimSpace(submission.Subject)
	body := strings.TrimSpace(submission.Body)
	if subject == "" || body == "" {
		return Circular{}, fmt.Errorf("subject and body are required: %w", apperrors.ErrInvalidInput)
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return Circular{}, apperrors.Wrapf(err, "failed to allocate circular number")
	}

	circular := Circular{
		CircularID: id,
		CreatedOn:  NowTimeFunc().UTC(),
		Submitter:  users.FormatAuthor(user.Name(), user.Affiliation, user.Email),
		Subject:    subject,
		Body:       body,
		Email:      user.Email,
	}

	if err := s.registrar.Register(ctx, circular); err != nil {
		return Circular{}, apperrors.Wrapf(err, "failed to register DOI for circular %d", id)
	}

	if err := s.repo.Put(ctx, circular); err != nil {
		return Circular{}, apperrors.Wrapf(err, "failed to store circular %d", id)
	}

	zerolog.Ctx(ctx).Info().Int("circular_id", id).Str("email", user.Email).Msg("Published circular")
	return circular, nil
}

func (s *Service) Get(ctx context.Context, circularID int) (Circular, error) {
	return s.repo.Get(ctx, circularID)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Circular, error) {
	return s.repo.List(ctx, offset, limit)
}
