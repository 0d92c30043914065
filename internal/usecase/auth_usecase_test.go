package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSTicketRoundTrip(t *testing.T) {
	uc := NewAuthUseCase(nil, newFakeUserRepo(), "test-secret", 300)

	ticket, err := uc.IssueWSTicket("u1")
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	uid, err := uc.VerifyWSTicket(ticket)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestWSTicketRejectsGarbage(t *testing.T) {
	uc := NewAuthUseCase(nil, newFakeUserRepo(), "test-secret", 300)

	_, err := uc.VerifyWSTicket("not-a-ticket")
	assert.Error(t, err)
}

func TestWSTicketRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthUseCase(nil, newFakeUserRepo(), "secret-a", 300)
	verifier := NewAuthUseCase(nil, newFakeUserRepo(), "secret-b", 300)

	ticket, err := issuer.IssueWSTicket("u1")
	require.NoError(t, err)

	_, err = verifier.VerifyWSTicket(ticket)
	assert.Error(t, err)
}

func TestWSTicketRejectsExpired(t *testing.T) {
	uc := NewAuthUseCase(nil, newFakeUserRepo(), "test-secret", -60)

	ticket, err := uc.IssueWSTicket("u1")
	require.NoError(t, err)

	_, err = uc.VerifyWSTicket(ticket)
	assert.Error(t, err)
}

func TestWSTicketTTLApplied(t *testing.T) {
	uc := NewAuthUseCase(nil, newFakeUserRepo(), "test-secret", 300)
	assert.Equal(t, 5*time.Minute, uc.ticketTTL)
}
