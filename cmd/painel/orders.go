package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/notify"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/staff"
)

func cmdLogin(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	password := fs.String("password", os.Getenv("CARDAPIO_STAFF_PASSWORD"), "senha do painel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("uso: login <usuário> --password SENHA")
	}
	if *password == "" {
		return errors.New("informe a senha com --password ou CARDAPIO_STAFF_PASSWORD")
	}

	resp, err := env.API.Login(ctx, fs.Arg(0), *password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("usuário ou senha incorretos")
		}
		return err
	}
	if err := env.StaffLogin(resp.AccessToken); err != nil {
		return err
	}
	fmt.Println("Conectado ao painel.")
	return nil
}

func cmdOrders(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "acompanhar ao vivo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash := staff.NewDashboard(env.API, env.Config.Poll.Dashboard)

	if !*watch {
		orders, err := dash.Refresh(ctx)
		if err != nil {
			return err
		}
		printOrders(dash, orders)
		return nil
	}

	listener := notify.NewListener(env.API.WebsocketURL(), dash.Handler())
	err := dash.Watch(ctx, listener, func(orders []api.Order) {
		printOrders(dash, orders)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printOrders(dash *staff.Dashboard, orders []api.Order) {
	if msg, ok := dash.Alert(); ok {
		fmt.Printf("\n*** %s ***\n", msg)
	}
	if len(orders) == 0 {
		fmt.Println("Nenhum pedido ativo.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Pedido\tMesa\tCliente\tStatus\tTotal\tPróxima ação")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.TableNumber, o.CustomerName,
			order.Label(order.Status(o.Status)), cart.FormatBRL(o.Total),
			order.ActionLabel(order.Status(o.Status)))
	}
	_ = w.Flush()
	fmt.Println()
}

func cmdAdvance(ctx context.Context, env *app.Env, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: advance <pedido-id>")
	}
	o, err := env.API.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}
	updated, err := staff.NewDashboard(env.API, 0).Advance(ctx, *o)
	if err != nil {
		return err
	}
	fmt.Printf("Pedido %s: %s\n", updated.ID, order.Label(order.Status(updated.Status)))
	return nil
}

func cmdCancel(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirma o cancelamento")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("uso: cancel <pedido-id> --yes")
	}

	updated, err := staff.NewDashboard(env.API, 0).Cancel(ctx, fs.Arg(0), *yes)
	if errors.Is(err, staff.ErrConfirmationRequired) {
		return errors.New("cancelamento exige --yes")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Pedido %s cancelado.\n", updated.ID)
	return nil
}

func cmdHistory(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	start := fs.String("start", "", "data inicial (AAAA-MM-DD)")
	end := fs.String("end", "", "data final (AAAA-MM-DD)")
	customer := fs.String("customer", "", "filtra pelo nome do cliente")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orders, err := env.API.History(ctx, api.HistoryFilter{
		StartDate:    *start,
		EndDate:      *end,
		CustomerName: *customer,
	})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Data\tPedido\tMesa\tCliente\tStatus\tTotal")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			o.CreatedAt.Local().Format("02/01/2006 15:04"),
			o.ID, o.TableNumber, o.CustomerName,
			order.Label(order.Status(o.Status)), cart.FormatBRL(o.Total))
	}
	return w.Flush()
}

// cmdTV runs the pickup board: ready orders on screen, each announced once.
func cmdTV(ctx context.Context, env *app.Env) error {
	dash := staff.NewDashboard(env.API, env.Config.Poll.Dashboard)
	board := staff.NewTVBoard()

	listener := notify.NewListener(env.API.WebsocketURL(), dash.Handler())
	err := dash.Watch(ctx, listener, func(orders []api.Order) {
		ready, announce := board.Update(orders)
		for _, o := range announce {
			fmt.Printf("\a*** PEDIDO PRONTO: %s — mesa %d ***\n", o.CustomerName, o.TableNumber)
		}
		if len(ready) == 0 {
			fmt.Println("Nenhum pedido pronto.")
			return
		}
		for _, o := range ready {
			fmt.Printf("PRONTO: %s (mesa %d)\n", o.CustomerName, o.TableNumber)
		}
		fmt.Println()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
