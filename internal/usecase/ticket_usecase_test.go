package usecase

import (
	"context"
	"errors"
	"testing"

	"crm_backoffice/internal/domain/entities"
	mock_interfaces "crm_backoffice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestTicketUseCase_Create(t *testing.T) {
	t.Run("invalid client id", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.Create(context.Background(), CreateTicketInput{Title: "Broken export"})
		if !errors.Is(err, ErrInvalidTicketClientID) {
			t.Fatalf("expected ErrInvalidTicketClientID, got %v", err)
		}
	})

	t.Run("invalid title", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.Create(context.Background(), CreateTicketInput{ClientID: "client-1", Title: "  "})
		if !errors.Is(err, ErrInvalidTicketTitle) {
			t.Fatalf("expected ErrInvalidTicketTitle, got %v", err)
		}
	})

	t.Run("invalid priority", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.Create(context.Background(), CreateTicketInput{ClientID: "client-1", Title: "x", Priority: "Urgent"})
		if !errors.Is(err, ErrInvalidTicketPriority) {
			t.Fatalf("expected ErrInvalidTicketPriority, got %v", err)
		}
	})

	t.Run("defaults and generated code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		uc := NewTicketUseCase(repo, NewCodeGenerator(counters), fixedClock{testNow})

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesTicket, entities.UnscopedPeriod).Return(1, nil)
		repo.EXPECT().ExistsByCode(gomock.Any(), "T001").Return(false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tk entities.Ticket) (entities.Ticket, error) {
				if tk.Code != "T001" {
					t.Fatalf("unexpected code %s", tk.Code)
				}
				if tk.Priority != entities.TicketPriorityMedium {
					t.Fatalf("expected default Medium priority, got %s", tk.Priority)
				}
				if tk.Status != entities.TicketStatusPending {
					t.Fatalf("expected Pending, got %s", tk.Status)
				}
				if tk.Comments == nil || len(tk.Comments) != 0 {
					t.Fatalf("expected empty comment thread")
				}
				return tk, nil
			},
		)

		res, err := uc.Create(context.Background(), CreateTicketInput{ClientID: " client-1 ", Title: " Broken export "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Title != "Broken export" || res.ClientID != "client-1" {
			t.Fatalf("expected trimmed fields, got %+v", res)
		}
	})
}

func TestTicketUseCase_UpdateStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.UpdateStatus(context.Background(), "T001", "Reopened")
		if !errors.Is(err, ErrInvalidTicketStatus) {
			t.Fatalf("expected ErrInvalidTicketStatus, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T404").Return(entities.Ticket{}, nil)

		_, err := uc.UpdateStatus(context.Background(), "T404", entities.TicketStatusClosed)
		if !errors.Is(err, ErrTicketNotFound) {
			t.Fatalf("expected ErrTicketNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", Status: entities.TicketStatusPending}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tk entities.Ticket) (entities.Ticket, error) {
				if tk.Status != entities.TicketStatusInProgress {
					t.Fatalf("expected In Progress, got %s", tk.Status)
				}
				return tk, nil
			},
		)

		if _, err := uc.UpdateStatus(context.Background(), "T001", entities.TicketStatusInProgress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTicketUseCase_AddComment(t *testing.T) {
	t.Run("empty author", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.AddComment(context.Background(), "T001", "  ", "hello")
		if !errors.Is(err, ErrInvalidCommentAuthor) {
			t.Fatalf("expected ErrInvalidCommentAuthor, got %v", err)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		uc := NewTicketUseCase(nil, nil, fixedClock{testNow})
		_, err := uc.AddComment(context.Background(), "T001", "user-1", "   ")
		if !errors.Is(err, ErrInvalidCommentText) {
			t.Fatalf("expected ErrInvalidCommentText, got %v", err)
		}
	})

	t.Run("appends to the thread", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tk entities.Ticket) (entities.Ticket, error) {
				if len(tk.Comments) != 1 {
					t.Fatalf("expected one comment, got %d", len(tk.Comments))
				}
				if tk.Comments[0].Text != "looking into it" || tk.Comments[0].AuthorID != "emp-1" {
					t.Fatalf("unexpected comment: %+v", tk.Comments[0])
				}
				return tk, nil
			},
		)

		comment, err := uc.AddComment(context.Background(), "T001", "emp-1", " looking into it ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comment.ID == "" {
			t.Fatalf("expected generated comment id")
		}
		if !comment.CreatedAt.Equal(testNow) {
			t.Fatalf("expected created_at stamped")
		}
	})
}

func TestTicketUseCase_SetClientResolution(t *testing.T) {
	t.Run("not owned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1"}, nil)

		_, err := uc.SetClientResolution(context.Background(), "T001", "client-2", true)
		if !errors.Is(err, ErrTicketNotOwned) {
			t.Fatalf("expected ErrTicketNotOwned, got %v", err)
		}
	})

	t.Run("no-op when flag unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1", ClientResolved: true}, nil)
		// No Update expected.

		res, err := uc.SetClientResolution(context.Background(), "T001", "client-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.ClientResolved {
			t.Fatalf("expected flag still set")
		}
	})

	t.Run("resolve stamps flag and system comment together", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1", Status: entities.TicketStatusInProgress}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tk entities.Ticket) (entities.Ticket, error) {
				if !tk.ClientResolved || tk.ClientResolvedAt == nil || !tk.ClientResolvedAt.Equal(testNow) {
					t.Fatalf("expected flag and timestamp set together: %+v", tk)
				}
				if tk.Status != entities.TicketStatusInProgress {
					t.Fatalf("official status must be untouched, got %s", tk.Status)
				}
				if len(tk.Comments) != 1 || tk.Comments[0].Text != clientResolvedComment || tk.Comments[0].AuthorID != "client-1" {
					t.Fatalf("expected system comment, got %+v", tk.Comments)
				}
				return tk, nil
			},
		)

		if _, err := uc.SetClientResolution(context.Background(), "T001", "client-1", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unresolve clears the timestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})

		resolvedAt := testNow.AddDate(0, 0, -1)
		stored := entities.Ticket{Code: "T001", ClientID: "client-1", ClientResolved: true, ClientResolvedAt: &resolvedAt}
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tk entities.Ticket) (entities.Ticket, error) {
				if tk.ClientResolved || tk.ClientResolvedAt != nil {
					t.Fatalf("expected flag and timestamp cleared together: %+v", tk)
				}
				if len(tk.Comments) != 1 || tk.Comments[0].Text != clientUnresolvedComment {
					t.Fatalf("expected unresolve system comment, got %+v", tk.Comments)
				}
				return tk, nil
			},
		)

		if _, err := uc.SetClientResolution(context.Background(), "T001", "client-1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTicketUseCase_DeleteByClient(t *testing.T) {
	t.Run("not owned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1", Status: entities.TicketStatusPending}, nil)

		err := uc.DeleteByClient(context.Background(), "T001", "client-2")
		if !errors.Is(err, ErrTicketNotOwned) {
			t.Fatalf("expected ErrTicketNotOwned, got %v", err)
		}
	})

	t.Run("in progress is protected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1", Status: entities.TicketStatusInProgress}, nil)

		err := uc.DeleteByClient(context.Background(), "T001", "client-1")
		if !errors.Is(err, ErrTicketNotDeletable) {
			t.Fatalf("expected ErrTicketNotDeletable, got %v", err)
		}
	})

	t.Run("pending deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockITicketRepository(ctrl)
		uc := NewTicketUseCase(repo, nil, fixedClock{testNow})
		repo.EXPECT().GetByCode(gomock.Any(), "T001").Return(entities.Ticket{Code: "T001", ClientID: "client-1", Status: entities.TicketStatusPending}, nil)
		repo.EXPECT().DeleteByCode(gomock.Any(), "T001").Return(nil)

		if err := uc.DeleteByClient(context.Background(), "T001", "client-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
