package services

import (
	"context"
	"fmt"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/domain"
)

// Action is an approve/reject transition on a borrowing or return record.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// LifecycleService requests state transitions on borrowings and returns.
// The backend owns the status; after a successful transition the caller must
// re-read the whole collection (fire-and-refetch, no local merge).
type LifecycleService struct {
	API *api.Client
}

func NewLifecycleService(client *api.Client) *LifecycleService {
	return &LifecycleService{API: client}
}

func (s *LifecycleService) ListBorrowings(ctx context.Context) ([]domain.Borrowing, error) {
	var rows []domain.Borrowing
	if err := s.API.GetJSON(ctx, "/api/admin/borrows", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *LifecycleService) ListReturns(ctx context.Context) ([]domain.Return, error) {
	var rows []domain.Return
	if err := s.API.GetJSON(ctx, "/api/admin/returns", &rows); err != nil {
		return nil, err
	}
	domain.ResolveReturns(rows)
	return rows, nil
}

func (s *LifecycleService) TransitionBorrowing(ctx context.Context, id int, action Action) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	return s.API.Patch(ctx, fmt.Sprintf("/api/admin/borrows/%d/%s", id, action))
}

func (s *LifecycleService) TransitionReturn(ctx context.Context, id int, action Action) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	return s.API.Patch(ctx, fmt.Sprintf("/api/admin/returns/%d/%s", id, action))
}

// ExportBorrowings passes the backend's spreadsheet through untouched.
func (s *LifecycleService) ExportBorrowings(ctx context.Context) ([]byte, string, error) {
	return s.API.Download(ctx, "/api/admin/export/borrowings")
}
