package usecase

import (
	"context"
	"strings"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidTicketCode     = domainerr.New(domainerr.KindInvalidInput, "invalid ticket code")
	ErrInvalidTicketClientID = domainerr.New(domainerr.KindInvalidInput, "invalid client_id")
	ErrInvalidTicketTitle    = domainerr.New(domainerr.KindInvalidInput, "invalid ticket title")
	ErrInvalidTicketPriority = domainerr.New(domainerr.KindInvalidInput, "invalid ticket priority")
	ErrInvalidTicketStatus   = domainerr.New(domainerr.KindInvalidInput, "invalid ticket status")
	ErrInvalidCommentText    = domainerr.New(domainerr.KindInvalidInput, "comment text must not be empty")
	ErrInvalidCommentAuthor  = domainerr.New(domainerr.KindInvalidInput, "invalid comment author")
	ErrTicketNotFound        = domainerr.New(domainerr.KindNotFound, "ticket not found")
	ErrTicketNotOwned        = domainerr.New(domainerr.KindInvalidInput, "ticket does not belong to this client")
	ErrTicketNotDeletable    = domainerr.New(domainerr.KindInvalidStateTransition, "ticket cannot be deleted in its current status")
)

// System comments appended when the client toggles their resolution flag.
const (
	clientResolvedComment   = "Client marked this ticket as resolved"
	clientUnresolvedComment = "Client unmarked this ticket as resolved"
)

type CreateTicketInput struct {
	ClientID    string
	Title       string
	Description string
	Priority    entities.TicketPriority
}

// ITicketUseCase owns the ticket lifecycle: code assignment, status updates,
// the append-only comment thread and the client-side resolution flag.

type ITicketUseCase interface {
	Create(ctx context.Context, in CreateTicketInput) (entities.Ticket, error)
	GetByCode(ctx context.Context, code string) (entities.Ticket, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Ticket, error)
	UpdateStatus(ctx context.Context, code string, status entities.TicketStatus) (entities.Ticket, error)
	Assign(ctx context.Context, code, employeeID string) (entities.Ticket, error)
	AddComment(ctx context.Context, code, authorID, text string) (entities.Comment, error)
	SetClientResolution(ctx context.Context, code, clientID string, resolved bool) (entities.Ticket, error)
	DeleteByClient(ctx context.Context, code, clientID string) error
}

type TicketUseCase struct {
	repo  interfaces.ITicketRepository
	codes ICodeGenerator
	clock interfaces.IClock
}

var _ ITicketUseCase = (*TicketUseCase)(nil)

func NewTicketUseCase(repo interfaces.ITicketRepository, codes ICodeGenerator, clock interfaces.IClock) *TicketUseCase {
	return &TicketUseCase{repo: repo, codes: codes, clock: clock}
}

func (u *TicketUseCase) Create(ctx context.Context, in CreateTicketInput) (entities.Ticket, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	if in.ClientID == "" {
		return entities.Ticket{}, ErrInvalidTicketClientID
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return entities.Ticket{}, ErrInvalidTicketTitle
	}
	if in.Priority == "" {
		in.Priority = entities.TicketPriorityMedium
	}
	if !in.Priority.Valid() {
		return entities.Ticket{}, ErrInvalidTicketPriority
	}

	now := u.clock.Now()
	t := entities.Ticket{
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		Status:      entities.TicketStatusPending,
		Comments:    []entities.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	code, err := u.codes.Generate(ctx, entities.SeriesTicket, entities.UnscopedPeriod, TicketCodeFormat(), u.repo.ExistsByCode)
	if err != nil {
		return entities.Ticket{}, err
	}
	t.Code = code

	return u.repo.Create(ctx, t)
}

func (u *TicketUseCase) GetByCode(ctx context.Context, code string) (entities.Ticket, error) {
	return u.get(ctx, code)
}

func (u *TicketUseCase) ListByClientID(ctx context.Context, clientID string) ([]entities.Ticket, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidTicketClientID
	}
	return u.repo.ListByClientID(ctx, clientID)
}

func (u *TicketUseCase) UpdateStatus(ctx context.Context, code string, status entities.TicketStatus) (entities.Ticket, error) {
	if !status.Valid() {
		return entities.Ticket{}, ErrInvalidTicketStatus
	}
	t, err := u.get(ctx, code)
	if err != nil {
		return entities.Ticket{}, err
	}
	t.Status = status
	t.UpdatedAt = u.clock.Now()
	return u.repo.Update(ctx, t)
}

func (u *TicketUseCase) Assign(ctx context.Context, code, employeeID string) (entities.Ticket, error) {
	employeeID = strings.TrimSpace(employeeID)
	t, err := u.get(ctx, code)
	if err != nil {
		return entities.Ticket{}, err
	}
	t.AssignedEmployeeID = employeeID
	t.UpdatedAt = u.clock.Now()
	return u.repo.Update(ctx, t)
}

// AddComment appends to the ticket's thread and returns the new comment with
// its assigned identifier. Comments are never mutated after creation.
func (u *TicketUseCase) AddComment(ctx context.Context, code, authorID, text string) (entities.Comment, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return entities.Comment{}, ErrInvalidCommentAuthor
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Comment{}, ErrInvalidCommentText
	}

	t, err := u.get(ctx, code)
	if err != nil {
		return entities.Comment{}, err
	}

	now := u.clock.Now()
	comment := entities.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: now,
	}
	t.Comments = append(t.Comments, comment)
	t.UpdatedAt = now

	if _, err := u.repo.Update(ctx, t); err != nil {
		return entities.Comment{}, err
	}
	return comment, nil
}

// SetClientResolution toggles the owning client's resolution flag. The flag
// and its timestamp move together, and each toggle leaves a system comment in
// the thread. Official status is untouched.
func (u *TicketUseCase) SetClientResolution(ctx context.Context, code, clientID string, resolved bool) (entities.Ticket, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return entities.Ticket{}, ErrInvalidTicketClientID
	}

	t, err := u.get(ctx, code)
	if err != nil {
		return entities.Ticket{}, err
	}
	if t.ClientID != clientID {
		return entities.Ticket{}, ErrTicketNotOwned
	}
	if t.ClientResolved == resolved {
		return t, nil
	}

	now := u.clock.Now()
	t.ClientResolved = resolved
	text := clientUnresolvedComment
	if resolved {
		t.ClientResolvedAt = &now
		text = clientResolvedComment
	} else {
		t.ClientResolvedAt = nil
	}
	t.Comments = append(t.Comments, entities.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		AuthorID:  clientID,
		CreatedAt: now,
	})
	t.UpdatedAt = now

	return u.repo.Update(ctx, t)
}

func (u *TicketUseCase) DeleteByClient(ctx context.Context, code, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ErrInvalidTicketClientID
	}
	t, err := u.get(ctx, code)
	if err != nil {
		return err
	}
	if t.ClientID != clientID {
		return ErrTicketNotOwned
	}
	if !t.ClientDeletable() {
		return ErrTicketNotDeletable
	}
	return u.repo.DeleteByCode(ctx, t.Code)
}

func (u *TicketUseCase) get(ctx context.Context, code string) (entities.Ticket, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Ticket{}, ErrInvalidTicketCode
	}
	t, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Ticket{}, err
	}
	if t.Code == "" {
		return entities.Ticket{}, ErrTicketNotFound
	}
	return t, nil
}
