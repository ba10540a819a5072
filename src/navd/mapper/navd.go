// Package mapper converts between wire, entity, and model representations.
package mapper

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/crossnav/navd/src/navd/entity"
	"github.com/crossnav/navd/src/navd/internal/errors"
	"github.com/crossnav/navd/src/navd/model"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:             s.UUID,
		RootURI:          s.RootURI,
		Repo:             string(s.Repo),
		Mode:             string(s.Mode),
		RevisionSpec:     string(s.Revision.Spec),
		RevisionID:       s.Revision.ID,
		Conn:             s.Conn,
		InitializeResult: s.InitializeResult,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(s *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:    s.UUID,
		RootURI: s.RootURI,
		Repo:    entity.RepoName(s.Repo),
		Mode:    entity.LanguageMode(s.Mode),
		Revision: entity.ResolvedRevision{
			Spec: entity.RevisionSpec(s.RevisionSpec),
			ID:   s.RevisionID,
		},
		Conn:             s.Conn,
		InitializeResult: s.InitializeResult,
	}, nil
}

// ContextToSessionUUID extracts the session UUID from a context.
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}

// ContextWithSessionUUID attaches the session UUID to the context used for
// routing outbound notices to the owning editor connection.
func ContextWithSessionUUID(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, entity.SessionContextKey, id)
}
