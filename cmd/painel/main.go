// Command painel is the restaurant dashboard: live orders, catalog and
// member administration, table links and the kitchen TV board.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
)

const usage = `painel — administração do restaurante

Uso: painel <comando> [argumentos]

Acesso:
  login <usuário> --password SENHA
  logout

Pedidos:
  orders [--watch]           pedidos ativos (com alerta de pagamento)
  advance <pedido-id>        avança o pedido para a próxima etapa
  cancel <pedido-id> --yes   cancela o pedido
  history [--start AAAA-MM-DD] [--end AAAA-MM-DD] [--customer NOME]
  tv                         telão de pedidos prontos

Cardápio:
  categories <list|add|update|delete> ...
  items <list|add|update|delete> ...
  upload <arquivo>           envia uma imagem e devolve a URL

Sócios:
  members <list|add|update|deactivate|delete|tabs|tab-orders|payment|pix> ...

Mesas:
  links <mesa...> [--qr-dir DIR]   links e QR codes por mesa

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

func dispatch(ctx context.Context, env *appkg.Env, cmd string, args []string) error {
	switch cmd {
	case "login":
		return cmdLogin(ctx, env, args)
	case "logout":
		if err := env.StaffLogout(); err != nil {
			return err
		}
		fmt.Println("Sessão encerrada.")
		return nil
	case "orders":
		return cmdOrders(ctx, env, args)
	case "advance":
		return cmdAdvance(ctx, env, args)
	case "cancel":
		return cmdCancel(ctx, env, args)
	case "history":
		return cmdHistory(ctx, env, args)
	case "tv":
		return cmdTV(ctx, env)
	case "categories":
		return cmdCategories(ctx, env, args)
	case "items":
		return cmdItems(ctx, env, args)
	case "upload":
		return cmdUpload(ctx, env, args)
	case "members":
		return cmdMembers(ctx, env, args)
	case "links":
		return cmdLinks(env, args)
	default:
		fmt.Println(usage)
		return errors.Errorf("comando desconhecido: %q", cmd)
	}
}
