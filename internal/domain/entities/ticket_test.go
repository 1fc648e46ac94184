package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicket_ClientDeletable(t *testing.T) {
	assert.True(t, Ticket{Status: TicketStatusPending}.ClientDeletable())
	assert.True(t, Ticket{Status: TicketStatusClosed}.ClientDeletable())
	assert.False(t, Ticket{Status: TicketStatusInProgress}.ClientDeletable())
	assert.False(t, Ticket{Status: TicketStatusResolved}.ClientDeletable())
}

func TestTicketStatus_Valid(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TicketStatus("Reopened").Valid())
}
