package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

func TestSession_LoginLogout(t *testing.T) {
	s := NewSession(state.NewMemStore())

	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.Token())

	p := Profile{ID: "m1", Name: "Ana", Email: "ana@example.com", Active: true}
	require.NoError(t, s.Login(p, "tok-1"))

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "tok-1", s.Token())
	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.Token())
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSession_LoginOverwritesPriorSession(t *testing.T) {
	s := NewSession(state.NewMemStore())

	require.NoError(t, s.Login(Profile{ID: "m1", Name: "Ana"}, "tok-1"))
	require.NoError(t, s.Login(Profile{ID: "m2", Name: "Bia"}, "tok-2"))

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "m2", got.ID)
	assert.Equal(t, "tok-2", s.Token())
}

func TestSession_TokenWithoutProfileIsLoggedOut(t *testing.T) {
	store := state.NewMemStore()
	require.NoError(t, store.Set(state.KeyMemberToken, []byte(`"orphan"`)))

	s := NewSession(store)
	assert.False(t, s.IsLoggedIn())
}
