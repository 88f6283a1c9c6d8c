// Command cardapio is the customer client: browse the menu, build a cart,
// place an order and follow it to the table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
)

const usage = `cardapio — pedidos na mesa

Uso: cardapio <comando> [argumentos]

Sessão:
  start [url]            resolve a mesa a partir do link do QR code
  reset                  descarta a sessão e o pedido ativo

Cardápio e carrinho:
  menu                   lista o cardápio
  cart                   mostra o carrinho
  add <item-id> [qtd]    adiciona um item
  set <item-id> <qtd>    ajusta a quantidade (0 remove)
  remove <item-id>       remove um item
  clear                  esvazia o carrinho

Pedido:
  checkout --name NOME [--obs TEXTO] [--conta]
  pix [--qr arquivo]     mostra a cobrança pix do pedido ativo
  pay                    declara o pagamento do pedido ativo
  status [--watch]       acompanha o pedido ativo
  orders                 histórico de pedidos da sessão

Sócio:
  member login <email> --password SENHA
  member logout
  member me
  member tab
  member tabs

Configuração via CARDAPIO_BASE_URL, CARDAPIO_STATE_DIR ou config.yaml.`

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		env, err := appkg.Setup(cfg, m)
		if err != nil {
			return err
		}

		args := os.Args[1:]
		if len(args) == 0 {
			fmt.Println(usage)
			return nil
		}
		return dispatch(ctx, env, args[0], args[1:])
	})
}
