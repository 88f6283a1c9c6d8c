package tablelink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/identity"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

func TestLink_RoundTripsThroughResolver(t *testing.T) {
	link, err := Link("https://pedidos.example.com", 14)
	require.NoError(t, err)
	assert.Contains(t, link, "?t=")

	id, err := identity.NewResolver(state.NewMemStore()).Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, 14, id.TableNumber)
}

func TestLink_RejectsNonPositiveTable(t *testing.T) {
	_, err := Link("https://pedidos.example.com", 0)
	assert.Error(t, err)
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("https://pedidos.example.com", 3, 256)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
