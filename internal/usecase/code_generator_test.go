package usecase

import (
	"context"
	"errors"
	"testing"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	mock_interfaces "crm_backoffice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCodeGenerator_Generate(t *testing.T) {
	neverExists := func(context.Context, string) (bool, error) { return false, nil }

	t.Run("first allocation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesInvoice, 2024).Return(1, nil)

		code, err := gen.Generate(context.Background(), entities.SeriesInvoice, 2024, InvoiceCodeFormat(2024), neverExists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != "INV-2024-001" {
			t.Fatalf("expected INV-2024-001, got %s", code)
		}
	})

	t.Run("wide values keep their digits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesTicket, entities.UnscopedPeriod).Return(1042, nil)

		code, err := gen.Generate(context.Background(), entities.SeriesTicket, entities.UnscopedPeriod, TicketCodeFormat(), neverExists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != "T1042" {
			t.Fatalf("expected T1042, got %s", code)
		}
	})

	t.Run("collision retries with a fresh value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		gomock.InOrder(
			counters.EXPECT().Increment(gomock.Any(), entities.SeriesTicket, entities.UnscopedPeriod).Return(7, nil),
			counters.EXPECT().Increment(gomock.Any(), entities.SeriesTicket, entities.UnscopedPeriod).Return(8, nil),
		)
		exists := func(_ context.Context, code string) (bool, error) {
			return code == "T007", nil
		}

		code, err := gen.Generate(context.Background(), entities.SeriesTicket, entities.UnscopedPeriod, TicketCodeFormat(), exists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != "T008" {
			t.Fatalf("expected T008, got %s", code)
		}
	})

	t.Run("exhaustion after bounded attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesTicket, entities.UnscopedPeriod).Return(1, nil).Times(maxCodeAttempts)
		alwaysTaken := func(context.Context, string) (bool, error) { return true, nil }

		_, err := gen.Generate(context.Background(), entities.SeriesTicket, entities.UnscopedPeriod, TicketCodeFormat(), alwaysTaken)
		if !errors.Is(err, ErrCodeAllocationExhausted) {
			t.Fatalf("expected ErrCodeAllocationExhausted, got %v", err)
		}
	})

	t.Run("counter error surfaces as storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesInvoice, 2024).Return(0, errors.New("dynamodb down"))

		_, err := gen.Generate(context.Background(), entities.SeriesInvoice, 2024, InvoiceCodeFormat(2024), neverExists)
		if !domainerr.IsKind(err, domainerr.KindStorage) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})

	t.Run("exists error surfaces as storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		gen := NewCodeGenerator(counters)

		counters.EXPECT().Increment(gomock.Any(), entities.SeriesInvoice, 2024).Return(3, nil)
		exists := func(context.Context, string) (bool, error) { return false, errors.New("query failed") }

		_, err := gen.Generate(context.Background(), entities.SeriesInvoice, 2024, InvoiceCodeFormat(2024), exists)
		if !domainerr.IsKind(err, domainerr.KindStorage) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}
